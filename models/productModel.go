package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Price         int64          `json:"price" binding:"required"`
	OriginalPrice *int64         `json:"originalPrice"`
	Images        datatypes.JSON `json:"images"`
	Sizes         datatypes.JSON `json:"sizes"`
	Category      string         `json:"category" binding:"required"`
	IsNew         bool           `json:"isNew"`
	IsSale        bool           `json:"isSale"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
