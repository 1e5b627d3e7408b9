package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Address  string
	Host     string
	From     string
	Password string
}

// Config holds everything the application reads from the environment. It is
// built once in main and handed to constructors; nothing below main touches
// os.Getenv.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	FrontendURL string

	PaystackSecretKey string
	PaystackBaseURL   string
	PaystackTimeout   time.Duration

	SMTP SMTPConfig

	WhatsAppCountryCode string
	BusinessPhone1      string
	BusinessPhone2      string

	// RenotifyOnReverify restores the legacy behavior of re-sending the
	// receipt and WhatsApp notification every time an already-paid order is
	// verified again. Off by default so concurrent verifies notify once.
	RenotifyOnReverify bool
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly.")
	}
}

func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseDSN:         os.Getenv("DATABASE_DSN"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		FrontendURL:         getEnv("FRONTEND_URL", "https://relookstores.com"),
		PaystackSecretKey:   os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:     getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackTimeout:     10 * time.Second,
		WhatsAppCountryCode: getEnv("WHATSAPP_COUNTRY_CODE", "234"),
		BusinessPhone1:      getEnv("BUSINESS_PHONE_1", "+2348147134884"),
		BusinessPhone2:      getEnv("BUSINESS_PHONE_2", "+2348135249526"),
		RenotifyOnReverify:  os.Getenv("PAYMENT_RENOTIFY_ON_REVERIFY") == "true",
		SMTP: SMTPConfig{
			Address:  os.Getenv("SMTP_ADDRESS"),
			Host:     os.Getenv("FROM_EMAIL_SMTP"),
			From:     os.Getenv("FROM_EMAIL"),
			Password: os.Getenv("FROM_EMAIL_PASSWORD"),
		},
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.PaystackSecretKey == "" {
		return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
