package initializers

import (
	"log"

	"github.com/watchDOGGGG/relook-online-store/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.UserAddress{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
