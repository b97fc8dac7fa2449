package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	// Stripe credentials are optional on purpose: without them the app boots
	// with an unconfigured payments client and billing endpoints report 503.
	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	CHECKOUT_SUCCESS_URL string
	CHECKOUT_CANCEL_URL  string
	BILLING_PORTAL_URL   string
	CURRENCY             string

	SEED_ADMIN_EMAIL    string
	SEED_ADMIN_PASSWORD string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")

	CHECKOUT_SUCCESS_URL = getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/billing/success")
	CHECKOUT_CANCEL_URL = getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/billing/cancel")
	BILLING_PORTAL_URL = getEnv("BILLING_PORTAL_URL", "http://localhost:3000/account")
	CURRENCY = getEnv("CURRENCY", "usd")

	SEED_ADMIN_EMAIL = getEnv("SEED_ADMIN_EMAIL", "")
	SEED_ADMIN_PASSWORD = getEnv("SEED_ADMIN_PASSWORD", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
