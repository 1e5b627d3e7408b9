package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserAddress struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;index" json:"userId"`
	Label      string    `json:"label" binding:"required"`
	FirstName  string    `json:"firstName" binding:"required"`
	LastName   string    `json:"lastName" binding:"required"`
	Phone      string    `json:"phone" binding:"required"`
	Address    string    `json:"address" binding:"required"`
	City       string    `json:"city" binding:"required"`
	State      string    `json:"state" binding:"required"`
	Country    string    `json:"country" binding:"required"`
	PostalCode *string   `json:"postalCode"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a *UserAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
