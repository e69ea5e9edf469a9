// Package config loads tool configuration from environment variables and an
// optional .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	DatabaseURL string
	MappingFile string
	LMN         LMNConfig
	QBO         QBOConfig
	Logging     LoggingConfig
}

// LMNConfig configures the LMN accounting API connection.
type LMNConfig struct {
	APIURL string
	Token  string
}

// QBOConfig configures the QuickBooks Online connection. Tokens are
// provisioned by the OAuth flow outside this tool.
type QBOConfig struct {
	AccessToken string
	RealmID     string
	Environment string
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, first loading a .env file
// when one is present. A custom .env path may be given; it must then exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MappingFile: getEnvOrDefault("CUSTOMER_MAPPING_FILE", "config/customer_mapping.csv"),
		LMN: LMNConfig{
			APIURL: os.Getenv("LMN_API_URL"),
			Token:  os.Getenv("LMN_API_TOKEN"),
		},
		QBO: QBOConfig{
			AccessToken: os.Getenv("QBO_ACCESS_TOKEN"),
			RealmID:     os.Getenv("QBO_REALM_ID"),
			Environment: getEnvOrDefault("QBO_ENVIRONMENT", "production"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "console"),
		},
	}

	return cfg, nil
}

// HasDatabase reports whether a database is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasLMN reports whether the LMN API is configured.
func (c *Config) HasLMN() bool {
	return c.LMN.Token != ""
}

// RequireQBO fails unless the QuickBooks connection is fully configured.
func (c *Config) RequireQBO() error {
	var missing []string
	if c.QBO.AccessToken == "" {
		missing = append(missing, "QBO_ACCESS_TOKEN")
	}
	if c.QBO.RealmID == "" {
		missing = append(missing, "QBO_REALM_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}
	return nil
}

// RequireDatabase fails unless DATABASE_URL is set.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
