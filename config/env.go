package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	JWTSecret     string
	JWTExpiry     string
	UploadDir     string
	MaxUploadSize int64

	StripeSecretKey      string
	StripePublishableKey string

	// Pricing knobs for the cart engine. Amounts are whole currency
	// units, rates are decimal fractions like "0.12".
	TaxRate           string
	DiscountRate      string
	DiscountThreshold int64
	FreeShippingMin   int64
	MidShippingMin    int64
	MidShippingCharge int64
	BaseShipping      int64
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8080")),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiry:     getEnv("JWT_EXPIRY", "24h"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: maxUploadSize,

		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),

		TaxRate:           getEnv("TAX_RATE", "0.12"),
		DiscountRate:      getEnv("DISCOUNT_RATE", "0.10"),
		DiscountThreshold: getEnvInt64("DISCOUNT_THRESHOLD", 5000),
		FreeShippingMin:   getEnvInt64("FREE_SHIPPING_MIN", 2000),
		MidShippingMin:    getEnvInt64("MID_SHIPPING_MIN", 1000),
		MidShippingCharge: getEnvInt64("MID_SHIPPING_CHARGE", 100),
		BaseShipping:      getEnvInt64("BASE_SHIPPING", 200),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

// Get returns the loaded configuration, loading it on first use so
// entry points that never call LoadConfig still get a usable config.
func Get() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
