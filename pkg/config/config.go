package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// LocalCurrencyCode is the currency every payslip line is expressed in.
	LocalCurrencyCode string

	// MinimumWageFallback backs the statutory calculations when the company
	// config row carries no minimum wage.
	MinimumWageFallback float64

	// DefaultRateSource filters exchange rate lookups when a request names none.
	DefaultRateSource string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOCAL_CURRENCY_CODE", "VES")
	v.SetDefault("MINIMUM_WAGE_FALLBACK", 130.0)
	v.SetDefault("DEFAULT_RATE_SOURCE", "")

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return &Config{
		DatabaseURL:         dbURL,
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		LocalCurrencyCode:   strings.ToUpper(v.GetString("LOCAL_CURRENCY_CODE")),
		MinimumWageFallback: v.GetFloat64("MINIMUM_WAGE_FALLBACK"),
		DefaultRateSource:   v.GetString("DEFAULT_RATE_SOURCE"),
	}, nil
}
