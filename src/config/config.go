package config

import (
	"fmt"
	"os"
	"strings"

	"stock-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. DATABASE_URL environment variable overrides the storage backend.
	// A postgres:// or postgresql:// URL selects Postgres, anything else is
	// treated as a SQLite file path.
	config.ApplyEnv(os.Getenv("DATABASE_URL"))

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides the storage configuration from a connection URL.
func (c *Config) ApplyEnv(databaseURL string) {
	if databaseURL == "" {
		return
	}

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		c.Storage.DBType = "postgres"
		c.Storage.DBConnectionString = databaseURL
		return
	}

	c.Storage.DBType = "sqlite"
	c.Storage.DBPath = strings.TrimPrefix(databaseURL, "sqlite://")
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d", c.Port)
	}

	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}

	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	if c.MarketData.MinRequestIntervalSeconds < 0 {
		return fmt.Errorf("minimum request interval cannot be negative")
	}
	if c.MarketData.MaxRetries <= 0 {
		return fmt.Errorf("max retries must be greater than 0")
	}
	if c.MarketData.RetryBaseDelaySeconds < 0 || c.MarketData.RetryDelayStepSeconds < 0 {
		return fmt.Errorf("retry delays cannot be negative")
	}

	if c.Server.BroadcastIntervalSeconds <= 0 {
		return fmt.Errorf("broadcast interval must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
