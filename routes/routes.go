package routes

import (
	"cart-api/controllers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, cartCtrl *controllers.CartController) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	carts := router.Group("/carts")
	{
		carts.POST("", cartCtrl.CreateCart)
		carts.GET("/:id", cartCtrl.GetCart)
		carts.POST("/:id/items", cartCtrl.AddLineItem)
		carts.GET("/:id/items", cartCtrl.ListLineItems)
		carts.PATCH("/:id/items", cartCtrl.UpdateQuantity)
		carts.DELETE("/:id/items/:productId", cartCtrl.RemoveLineItem)
	}
}
