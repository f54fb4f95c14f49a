package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Payment processor (platform defaults; hosts may override per
	// catalog entry).
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeSigningSecret string `mapstructure:"STRIPE_SIGNING_SECRET"`

	// Reservation engine.
	HoldTTLMinutes   int    `mapstructure:"HOLD_TTL_MINUTES"`
	HoldSweepSeconds int    `mapstructure:"HOLD_SWEEP_SECONDS"`
	CatalogPath      string `mapstructure:"CATALOG_PATH"`

	// Where the payment processor redirects guests after checkout.
	CheckoutSuccessURL string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `mapstructure:"CHECKOUT_CANCEL_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "stayloft")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("HOLD_TTL_MINUTES", 10)
	viper.SetDefault("HOLD_SWEEP_SECONDS", 60)
	viper.SetDefault("CATALOG_PATH", "./config/catalog.yaml")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:3000/confirmation?session_id={CHECKOUT_SESSION_ID}")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:3000/")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
