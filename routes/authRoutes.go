package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/controllers"
)

func AuthRoutes(server *gin.Engine, authController *controllers.AuthController) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/verify-email/:activationToken", authController.ActivateAccount)
		auth.POST("/forgot-password", authController.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", authController.ResetPassword)
	}
}
