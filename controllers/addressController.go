package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
	"github.com/watchDOGGGG/relook-online-store/models"
	"gorm.io/gorm"
)

// AddressController manages the caller's saved shipping addresses. Every
// handler is scoped to the authenticated user.
type AddressController struct {
	db *gorm.DB
}

func NewAddressController(db *gorm.DB) *AddressController {
	return &AddressController{db: db}
}

func (c *AddressController) CreateAddress(ctx *gin.Context) {
	var address models.UserAddress
	if err := ctx.ShouldBindJSON(&address); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	address.UserID = middlewares.AuthUserID(ctx)

	if err := c.db.Create(&address).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to save address")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": address})
}

func (c *AddressController) GetAddresses(ctx *gin.Context) {
	var addresses []models.UserAddress
	result := c.db.
		Where("user_id = ?", middlewares.AuthUserID(ctx)).
		Order("is_default desc").
		Order("created_at desc").
		Find(&addresses)

	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

func (c *AddressController) UpdateAddress(ctx *gin.Context) {
	addressId := ctx.Param("addressId")
	userID := middlewares.AuthUserID(ctx)

	var address models.UserAddress
	err := c.db.Where("id = ? AND user_id = ?", addressId, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch address")
		}
		return
	}

	var updates models.UserAddress
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	updates.ID = address.ID
	updates.UserID = address.UserID
	updates.CreatedAt = address.CreatedAt

	if err := c.db.Save(&updates).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update address")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"address": updates})
}

func (c *AddressController) DeleteAddress(ctx *gin.Context) {
	addressId := ctx.Param("addressId")
	userID := middlewares.AuthUserID(ctx)

	result := c.db.Where("id = ? AND user_id = ?", addressId, userID).Delete(&models.UserAddress{})
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to delete address")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted successfully."})
}

// SetDefaultAddress clears the current default and promotes the given
// address, both inside one transaction.
func (c *AddressController) SetDefaultAddress(ctx *gin.Context) {
	addressId := ctx.Param("addressId")
	userID := middlewares.AuthUserID(ctx)

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserAddress{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.UserAddress{}).
			Where("id = ? AND user_id = ?", addressId, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		return
	}
	if err != nil {
		log.Println("Default address error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to set default address")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Default address updated."})
}
