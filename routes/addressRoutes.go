package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/controllers"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
)

func AddressRoutes(server *gin.Engine, addressController *controllers.AddressController, jwtSecret string) {
	addresses := server.Group("/addresses", middlewares.RequireAuth(jwtSecret))
	{
		addresses.POST("", addressController.CreateAddress)
		addresses.GET("", addressController.GetAddresses)
		addresses.PUT("/:addressId", addressController.UpdateAddress)
		addresses.DELETE("/:addressId", addressController.DeleteAddress)
		addresses.PATCH("/:addressId/default", addressController.SetDefaultAddress)
	}
}
