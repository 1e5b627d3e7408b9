package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/checkout"
	"github.com/watchDOGGGG/relook-online-store/config"
	"github.com/watchDOGGGG/relook-online-store/controllers"
	"github.com/watchDOGGGG/relook-online-store/initializers"
	"github.com/watchDOGGGG/relook-online-store/notifications"
	"github.com/watchDOGGGG/relook-online-store/payments"
	"github.com/watchDOGGGG/relook-online-store/repository"
	"github.com/watchDOGGGG/relook-online-store/routes"
	"github.com/watchDOGGGG/relook-online-store/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := initializers.ConnectToDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal(err)
	}

	mailer := utils.NewMailer(cfg.SMTP)
	gateway := payments.NewClient(cfg.PaystackSecretKey, cfg.PaystackBaseURL, cfg.PaystackTimeout)
	channels := []notifications.Channel{
		notifications.NewEmailReceipt(mailer),
		notifications.NewWhatsAppLink(cfg.WhatsAppCountryCode, cfg.BusinessPhone1, cfg.BusinessPhone2),
	}

	orderStore := repository.NewOrderRepository(db)
	orchestrator := checkout.NewOrchestrator(orderStore, gateway, channels, cfg.FrontendURL, cfg.RenotifyOnReverify)

	authController := controllers.NewAuthController(db, cfg, mailer)
	orderController := controllers.NewOrderController(db)
	paymentController := controllers.NewPaymentController(orchestrator)
	productController := controllers.NewProductController(db)
	addressController := controllers.NewAddressController(db)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "https://relookstores.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, authController)
	routes.ProductRoutes(server, productController, cfg.JWTSecret)
	routes.OrderRoutes(server, orderController, cfg.JWTSecret)
	routes.PaymentRoutes(server, paymentController, cfg.JWTSecret)
	routes.AddressRoutes(server, addressController, cfg.JWTSecret)

	server.Run(":" + cfg.Port)
}
