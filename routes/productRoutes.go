package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/controllers"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
)

func ProductRoutes(server *gin.Engine, productController *controllers.ProductController, jwtSecret string) {
	admin := server.Group("/product", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin())
	{
		admin.POST("", productController.CreateProduct)
		admin.GET("", productController.GetProducts)
		admin.GET("/:id", productController.GetProduct)
		admin.PUT("/:id", productController.UpdateProduct)
		admin.DELETE("/:id", productController.DeleteProduct)
	}
}
