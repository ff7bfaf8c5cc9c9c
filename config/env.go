package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	Port      string
	OriginURL string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	CatalogBaseURL  string
	CatalogTimeout  time.Duration
	CatalogCacheTTL time.Duration
}

// Load reads the environment (and .env when present) into a Config.
// The result is passed into constructors explicitly; nothing in the
// application reads configuration from package globals.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("APP_PORT", getEnv("PORT", "8080")),
		OriginURL: os.Getenv("ORIGIN_URL"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "cart"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
		CatalogTimeout:  getDuration("CATALOG_TIMEOUT", 3*time.Second),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
	}

	log.Printf("Configuration loaded, environment: %s", cfg.AppEnv)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
