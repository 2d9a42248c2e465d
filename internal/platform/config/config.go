package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// GSTAccounts names the control accounts the GST settlement entry posts
// against. Codes must exist in the chart of accounts.
type GSTAccounts struct {
	OutputTaxAccount string
	InputTaxAccount  string
	ClearingAccount  string

	// AdjustmentAccount absorbs the adjustments figure of a return during
	// settlement. Optional; returns with non-zero adjustments cannot be
	// finalized without it.
	AdjustmentAccount string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Base/reporting currency. Line amounts are validated against its
	// decimal places and reports are expressed in it.
	BaseCurrencyCode          string
	BaseCurrencyDecimalPlaces int32

	GST GSTAccounts

	// Rate limiting
	RateLimitPeriod string
	RateLimitCount  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY_CODE", "SGD")
	viper.SetDefault("BASE_CURRENCY_DECIMAL_PLACES", 2)
	viper.SetDefault("GST_OUTPUT_TAX_ACCOUNT", "2201")
	viper.SetDefault("GST_INPUT_TAX_ACCOUNT", "1301")
	viper.SetDefault("GST_CLEARING_ACCOUNT", "2202")
	viper.SetDefault("GST_ADJUSTMENT_ACCOUNT", "")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_COUNT", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BaseCurrencyCode = viper.GetString("BASE_CURRENCY_CODE")
	if cfg.BaseCurrencyCode == "" {
		cfg.BaseCurrencyCode = "SGD"
		log.Printf("Warning: BASE_CURRENCY_CODE not set. Defaulting to %s.\n", cfg.BaseCurrencyCode)
	}

	cfg.BaseCurrencyDecimalPlaces = viper.GetInt32("BASE_CURRENCY_DECIMAL_PLACES")
	if cfg.BaseCurrencyDecimalPlaces < 0 || cfg.BaseCurrencyDecimalPlaces > 8 {
		log.Printf("Warning: BASE_CURRENCY_DECIMAL_PLACES out of range (%d). Defaulting to 2.\n", cfg.BaseCurrencyDecimalPlaces)
		cfg.BaseCurrencyDecimalPlaces = 2
	}

	cfg.GST = GSTAccounts{
		OutputTaxAccount:  viper.GetString("GST_OUTPUT_TAX_ACCOUNT"),
		InputTaxAccount:   viper.GetString("GST_INPUT_TAX_ACCOUNT"),
		ClearingAccount:   viper.GetString("GST_CLEARING_ACCOUNT"),
		AdjustmentAccount: viper.GetString("GST_ADJUSTMENT_ACCOUNT"),
	}

	cfg.RateLimitPeriod = viper.GetString("RATE_LIMIT_PERIOD")
	cfg.RateLimitCount = viper.GetInt64("RATE_LIMIT_COUNT")

	return cfg, nil
}
