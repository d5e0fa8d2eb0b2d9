package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Ledger   LedgerConfig
	Backfill BackfillConfig
	Stage    string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds trading-calendar and snapshot scheduling configuration.
type MarketConfig struct {
	// Holidays are ISO dates (YYYY-MM-DD) on which no snapshot is taken.
	Holidays []string
	// SnapshotSchedule is the cron expression for the daily snapshot job.
	SnapshotSchedule string
}

// LedgerConfig holds accounting configuration.
type LedgerConfig struct {
	// InitialCash is the opening balance the trade log replays from, and the
	// deposit seeded into a first-time ledger.
	InitialCash decimal.Decimal
}

// BackfillConfig holds the synthetic-history policy for non-production stages.
type BackfillConfig struct {
	Days             int
	ThresholdDivisor int
	Seed             int64
}

// IsDevStage reports whether the synthetic backfill should run at startup.
func (c *Config) IsDevStage() bool {
	return c.Stage == "dev"
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	initialCash, err := decimal.NewFromString(getEnv("INITIAL_CASH", "10000.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_CASH: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/trading_journal.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			Holidays:         splitList(getEnv("MARKET_HOLIDAYS", "")),
			SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "30 16 * * *"),
		},
		Ledger: LedgerConfig{
			InitialCash: initialCash,
		},
		Backfill: BackfillConfig{
			Days:             getEnvInt("BACKFILL_DAYS", 30),
			ThresholdDivisor: getEnvInt("BACKFILL_THRESHOLD_DIVISOR", 2),
			Seed:             int64(getEnvInt("BACKFILL_SEED", 1)),
		},
		Stage: getEnv("STAGE", "prod"),
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
