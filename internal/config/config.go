package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Paystack PaystackConfig
	JWT      JWTConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// PaystackConfig holds Paystack gateway-specific configuration.
// SecretKey is required for verify calls and webhook signature checks
// and must be supplied via the environment, never from source.
type PaystackConfig struct {
	BaseURL   string
	SecretKey string
}

// JWTConfig holds JWT-specific configuration for the admin dashboard
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "3000")
	viper.SetDefault("Server.AllowedOrigins", []string{"http://localhost:8000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "mtn-bundles")
	viper.SetDefault("Paystack.BaseURL", "https://api.paystack.co")
	// The secrets default to empty so viper tracks the keys; without a
	// registered key AutomaticEnv never surfaces the env value into
	// Unmarshal. Real values come from PAYSTACK_SECRETKEY / JWT_SECRET.
	viper.SetDefault("Paystack.SecretKey", "")
	viper.SetDefault("JWT.Secret", "")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
}
