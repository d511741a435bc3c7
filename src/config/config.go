package config

import (
	"fmt"
	"os"

	"trade-stats/src/models"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the YAML leaves engine limits unset.
const (
	DefaultMaxSymbolLength = 64
	DefaultMaxBatchSize    = 10000
	DefaultJournalQueue    = 1024
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from YAML file
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
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Engine.MaxSymbolLength == 0 {
		c.Engine.MaxSymbolLength = DefaultMaxSymbolLength
	}
	if c.Engine.MaxBatchSize == 0 {
		c.Engine.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.Storage.QueueSize == 0 {
		c.Storage.QueueSize = DefaultJournalQueue
	}
	if c.Engine.MonitorIntervalSeconds == 0 {
		c.Engine.MonitorIntervalSeconds = 60
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 {
		if c.GrpcPort <= 1024 || c.GrpcPort > 65535 {
			return fmt.Errorf("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort)
		}
		if c.GrpcPort == c.Port {
			return fmt.Errorf("grpc port must differ from server port")
		}
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "", "none":
		// Journal disabled
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("retention days cannot be negative")
	}

	// Validate Engine configuration
	if c.Engine.MaxSymbolLength <= 0 {
		return fmt.Errorf("max symbol length must be greater than 0")
	}
	if c.Engine.MaxBatchSize <= 0 {
		return fmt.Errorf("max batch size must be greater than 0")
	}
	if c.Engine.MaxMemoryMB < 0 {
		return fmt.Errorf("max memory cannot be negative")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
