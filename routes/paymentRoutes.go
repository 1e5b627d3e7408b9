package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/controllers"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
)

func PaymentRoutes(server *gin.Engine, paymentController *controllers.PaymentController, jwtSecret string) {
	payments := server.Group("/payments", middlewares.RequireAuth(jwtSecret))
	{
		payments.POST("/initialize", paymentController.InitializePayment)
		payments.POST("/verify", paymentController.VerifyPayment)
	}
}
