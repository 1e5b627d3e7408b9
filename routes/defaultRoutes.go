package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
