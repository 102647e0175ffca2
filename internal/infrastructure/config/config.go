// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${ENV_VAR} expansion
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	tolerance := cfg.Reconciliation.ToleranceAmount
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Ledgers        LedgersConfig        `yaml:"ledgers"`
	Storage        StorageConfig        `yaml:"storage"`
	Server         ServerConfig         `yaml:"server"`
	Observability  ObservabilityConfig  `yaml:"observability"`
}

// ReconciliationConfig holds the matching-engine run parameters.
type ReconciliationConfig struct {
	// ToleranceAmount is the maximum amount difference (in ledger
	// currency) for two records to be considered the same event.
	ToleranceAmount float64 `yaml:"tolerance_amount"`

	// ToleranceDays is the maximum date difference in whole days.
	ToleranceDays int `yaml:"tolerance_days"`

	// CheckIdentity enables person verification between the two ledgers.
	CheckIdentity bool `yaml:"check_identity"`

	// IdentityMap maps source-ledger card tokens to person names.
	IdentityMap map[string]string `yaml:"identity_map"`
}

// LedgersConfig describes the two ledgers being reconciled.
type LedgersConfig struct {
	Source LedgerConfig `yaml:"source"`
	Target LedgerConfig `yaml:"target"`
}

// LedgerConfig holds the display label and the explicit spreadsheet column
// names of one ledger. Columns are configured, never guessed.
type LedgerConfig struct {
	Label   string        `yaml:"label"`
	Columns ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig names the spreadsheet columns to read. Date and Amount are
// required; Description and Identity are optional.
type ColumnsConfig struct {
	Date        string `yaml:"date"`
	Amount      string `yaml:"amount"`
	Description string `yaml:"description"`
	Identity    string `yaml:"identity"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration the tool ships with: $2.00 amount
// tolerance, 2 days date tolerance, identity checking on, and the column
// names of a CapitalOne statement and a Jobber expense export.
func Default() *Config {
	return &Config{
		Reconciliation: ReconciliationConfig{
			ToleranceAmount: 2.0,
			ToleranceDays:   2,
			CheckIdentity:   true,
		},
		Ledgers: LedgersConfig{
			Source: LedgerConfig{
				Label: "CapitalOne",
				Columns: ColumnsConfig{
					Date:        "Transaction Date",
					Amount:      "Debit",
					Description: "Description",
					Identity:    "Card No.",
				},
			},
			Target: LedgerConfig{
				Label: "Jobber",
				Columns: ColumnsConfig{
					Date:        "Date",
					Amount:      "Total $",
					Description: "Item name",
					Identity:    "Entered by",
				},
			},
		},
		Storage: StorageConfig{
			DatabasePath: "reconcile.db",
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "info"},
		},
	}
}

// Load reads and parses the config file. Absent keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g. ${RECONCILE_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// FromEnv loads configuration from environment variables only.
func FromEnv() *Config {
	cfg := Default()
	cfg.Storage.DatabasePath = getEnv("RECONCILE_DB_PATH", cfg.Storage.DatabasePath)
	cfg.Server.Port = getEnvInt("RECONCILE_PORT", cfg.Server.Port)
	cfg.Observability.Logging.Level = getEnv("RECONCILE_LOG_LEVEL", cfg.Observability.Logging.Level)
	return cfg
}

// LoadOrEnv loads config.yaml if present, falling back to environment
// variables.
func LoadOrEnv() *Config {
	if path := getEnv("RECONCILE_CONFIG", "config.yaml"); fileExists(path) {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return FromEnv()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
