package config

import (
	"os"
)

type AppConfig struct {
	Port        string
	PublicURL   string // serving origin embedded into event QR data
	FrontendURL string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Email    EmailConfig
	Stripe   StripeConfig
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.PublicURL = getEnv("APP_PUBLIC_URL", "http://localhost:"+cfg.App.Port)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", cfg.App.PublicURL)

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "snapgather")

	cfg.Storage.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.Storage.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.Storage.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.Storage.Bucket = os.Getenv("R2_BUCKET")
	cfg.Storage.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Email.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "SnapGather")

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
