package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External carrier booking API
	CarrierBaseURL string
	CarrierAPIKey  string
	CarrierTimeout time.Duration

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "parcel-broker-app")
	viper.SetDefault("CARRIER_BASE_URL", "")
	viper.SetDefault("CARRIER_API_KEY", "")
	viper.SetDefault("CARRIER_TIMEOUT", "15s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CarrierBaseURL = viper.GetString("CARRIER_BASE_URL")
	if cfg.CarrierBaseURL == "" {
		log.Println("Warning: CARRIER_BASE_URL environment variable not set. Carrier bookings will fail.")
	}
	cfg.CarrierAPIKey = viper.GetString("CARRIER_API_KEY")

	carrierTimeoutStr := viper.GetString("CARRIER_TIMEOUT")
	carrierTimeout, err := time.ParseDuration(carrierTimeoutStr)
	if err != nil {
		carrierTimeout = 15 * time.Second
		log.Printf("Warning: Invalid value for CARRIER_TIMEOUT ('%s'). Defaulting to %s.\n", carrierTimeoutStr, carrierTimeout.String())
	}
	cfg.CarrierTimeout = carrierTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
