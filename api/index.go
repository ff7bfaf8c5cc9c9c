package api

import (
	"cart-api/config"
	"cart-api/controllers"
	"cart-api/libs"
	"cart-api/middleware"
	"cart-api/repositories"
	"cart-api/routes"
	"cart-api/services"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp builds the application once per serverless instance; the
// composition mirrors main.go.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.Load()

		db, err := config.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		cache := config.ConnectRedis(cfg)

		catalog := libs.NewCatalogClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, cache, cfg.CatalogCacheTTL)
		cartRepo := repositories.NewCartRepository(db)
		cartService := services.NewCartService(cartRepo, catalog)
		cartCtrl := controllers.NewCartController(cartService)

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware(cfg.OriginURL))

		routes.SetupRoutes(router, cartCtrl)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
