package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                     string    `gorm:"primaryKey;size:36" json:"id"`
	Fullname               string    `json:"fullname"`
	Email                  string    `gorm:"uniqueIndex;size:191" json:"email"`
	Phone                  string    `json:"phone"`
	Password               string    `json:"password"`
	Role                   string    `gorm:"size:20;default:user" json:"role"`
	AccountActivated       bool      `json:"accountActivated"`
	AccountActivationToken string    `json:"-"`
	PasswordResetToken     string    `json:"-"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
