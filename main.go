package main

import (
	"cart-api/config"
	"cart-api/controllers"
	_ "cart-api/docs"
	"cart-api/libs"
	"cart-api/middleware"
	"cart-api/repositories"
	"cart-api/routes"
	"cart-api/services"
	"log"

	"github.com/gin-gonic/gin"
)

// @title Cart API
// @version 1.0
// @description Shopping-cart service with catalog-enriched line items.
// @BasePath /
func main() {
	cfg := config.Load()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	cache := config.ConnectRedis(cfg)
	if cache != nil {
		defer cache.Close()
	}

	catalog := libs.NewCatalogClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, cache, cfg.CatalogCacheTTL)
	cartRepo := repositories.NewCartRepository(db)
	cartService := services.NewCartService(cartRepo, catalog)
	cartCtrl := controllers.NewCartController(cartService)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	routes.SetupRoutes(router, cartCtrl)

	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
