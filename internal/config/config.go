package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	HTTPAddr        string
	OfferServiceURL string
	DefaultCurrency string
	DefaultLanguage string
}

// Load reads configuration from environment variables with reasonable
// defaults. A .env file in the working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8081"),
		OfferServiceURL: getEnv("OFFER_SERVICE_URL", "http://localhost:8080/offers"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "brl"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "pt"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
