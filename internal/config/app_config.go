/*
Package config - SICOSS Application Configuration

==============================================================================
FILE: internal/config/app_config.go
==============================================================================

DESCRIPTION:
    Central application configuration for the SICOSS processing service.
    Loads settings from environment variables, .env files, and optionally
    from HashiCorp Vault for production secrets management. The cap/validator
    knobs that drive the pipeline itself (SicossConfig) are loaded separately
    by internal/sicossconfig and referenced here only by directory.

CONFIGURATION SOURCES (priority order):
    1. HashiCorp Vault (if VAULT_ADDR is set)
    2. Environment variables
    3. .env file
    4. Default values in DefaultAppConfig()

==============================================================================
*/
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/vault/api"
	"github.com/joho/godotenv"
)

// AppConfig contains the ambient application configuration: everything the
// process needs before it can even load a SicossConfig or start accepting
// requests.
type AppConfig struct {
	// Server configuration
	ServerPort int    `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENVIRONMENT"`

	// Database configuration
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBDriver    string `mapstructure:"DB_DRIVER"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// SicossConfigDir points at the directory internal/sicossconfig loads
	// its master file and per-section JSON documents from.
	SicossConfigDir string `mapstructure:"SICOSS_CONFIG_DIR"`

	// MaxConcurrentEmployees bounds the errgroup worker pool used by the
	// pipeline's per-employee fan-out (spec.md §5).
	MaxConcurrentEmployees int `mapstructure:"MAX_CONCURRENT_EMPLOYEES"`

	// PersistBatchSize is the chunk size Persister uses for CreateInBatches
	// (spec.md §4.6: "chunk size >= 1000 rows").
	PersistBatchSize int `mapstructure:"PERSIST_BATCH_SIZE"`

	// Vault client, populated only when VAULT_ADDR is set.
	VaultClient *api.Client
}

// DefaultAppConfig returns configuration with default values.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		ServerPort:             8080,
		Env:                    "development",
		DatabaseURL:            "./sicoss.db",
		DBDriver:               "sqlite",
		LogLevel:               "info",
		CORSAllowedOrigins:     "*",
		SicossConfigDir:        "configs/sicoss",
		MaxConcurrentEmployees: 8,
		PersistBatchSize:       1000,
	}
}

// LoadAppConfig loads all application configuration.
func LoadAppConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	config := DefaultAppConfig()

	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.ServerPort = port
		}
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		config.Env = env
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.DatabaseURL = dbURL
	}
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		config.DBDriver = dbDriver
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.CORSAllowedOrigins = corsOrigins
	}
	if configDir := os.Getenv("SICOSS_CONFIG_DIR"); configDir != "" {
		config.SicossConfigDir = configDir
	}
	if maxConc := os.Getenv("MAX_CONCURRENT_EMPLOYEES"); maxConc != "" {
		if n, err := strconv.Atoi(maxConc); err == nil && n > 0 {
			config.MaxConcurrentEmployees = n
		}
	}
	if batchSize := os.Getenv("PERSIST_BATCH_SIZE"); batchSize != "" {
		if n, err := strconv.Atoi(batchSize); err == nil && n > 0 {
			config.PersistBatchSize = n
		}
	}

	if os.Getenv("VAULT_ADDR") != "" {
		if err := loadFromVault(config); err != nil {
			fmt.Printf("Warning: Could not load secrets from Vault: %v\n", err)
		}
	}

	return config, nil
}

// loadFromVault connects to Vault and overrides the database DSN with the
// production secret, when present.
func loadFromVault(c *AppConfig) error {
	vaultConfig := api.DefaultConfig() // VAULT_ADDR and VAULT_TOKEN are read from env vars

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return fmt.Errorf("failed to create vault client: %w", err)
	}
	c.VaultClient = client

	secretPath := os.Getenv("VAULT_SECRET_PATH")
	if secretPath == "" {
		secretPath = "secret/data/sicoss"
	}

	secret, err := client.KVv2(secretPath).Get(context.Background(), "")
	if err != nil {
		return fmt.Errorf("failed to read secrets from vault path %s: %w", secretPath, err)
	}

	if dbURL, ok := secret.Data["DATABASE_URL"].(string); ok {
		c.DatabaseURL = dbURL
	}

	fmt.Println("Successfully loaded secrets from Vault")
	return nil
}

// IsProduction reports whether the environment is production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment reports whether the environment is development.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsTesting reports whether the environment is testing.
func (c *AppConfig) IsTesting() bool {
	return c.Env == "testing"
}
