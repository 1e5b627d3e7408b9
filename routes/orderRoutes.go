package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/controllers"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
)

func OrderRoutes(server *gin.Engine, orderController *controllers.OrderController, jwtSecret string) {
	authed := server.Group("/", middlewares.RequireAuth(jwtSecret))
	{
		authed.POST("/order", orderController.CreateOrder)
		authed.GET("/order/:orderId", orderController.GetOrderById)
		authed.GET("/user/:userId/orders", orderController.GetOrdersByCustomerId)
	}

	admin := server.Group("/", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin())
	{
		admin.GET("/orders", orderController.GetOrders)
		admin.GET("/orders/undelivered", orderController.GetUndeliveredOrders)
		admin.PATCH("/order/:orderId", orderController.UpdateOrderStatus)
		admin.DELETE("/order/:orderId", orderController.DeleteOrder)
	}
}
