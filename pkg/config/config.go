// Package config provides configuration management for the canteen ledger.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig
	Ledger  LedgerConfig
	Server  ServerConfig
	Debug   bool
}

// StorageConfig represents where data lives.
type StorageConfig struct {
	Root      string
	DBPath    string
	LedgerDir string
}

// LedgerConfig represents billing behaviour.
type LedgerConfig struct {
	TariffFile           string
	RejectDuplicateMeals bool
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	rejectDup, err := parseBoolEnv("CANTEEN_REJECT_DUPLICATE_MEALS", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Storage: StorageConfig{
			Root:      getEnvOrDefault("CANTEEN_ROOT", "./canteen-data"),
			DBPath:    os.Getenv("CANTEEN_DB_PATH"),
			LedgerDir: os.Getenv("CANTEEN_LEDGER_DIR"),
		},
		Ledger: LedgerConfig{
			TariffFile:           os.Getenv("CANTEEN_TARIFF_FILE"),
			RejectDuplicateMeals: rejectDup,
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "5000"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "storage":
			switch path[1] {
			case "root":
				value = c.Storage.Root
			case "dbPath":
				value = c.Storage.DBPath
			case "ledgerDir":
				value = c.Storage.LedgerDir
			}
		case "ledger":
			switch path[1] {
			case "tariffFile":
				value = c.Ledger.TariffFile
			}
		case "server":
			switch path[1] {
			case "port":
				value = c.Server.Port
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a bool from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
