// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath  string
	PurchasesPath string

	// OverlapThreshold is the ounces-per-day rate above which purchases
	// are grouped into one simultaneous consumption period.
	OverlapThreshold float64

	// LookbackDays is the trailing window used to estimate the current
	// consumption rate when projecting the open period.
	LookbackDays int

	// LowStockDays triggers a desktop notification when the projected
	// depletion date is this close.
	LowStockDays int
}

// Default values
const (
	defaultOverlapThreshold = 3.0
	defaultLookbackDays     = 30
	defaultLowStockDays     = 3
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:     getEnvString("BEANWATCH_DB_PATH", getDefaultDatabasePath()),
		PurchasesPath:    getEnvString("BEANWATCH_PURCHASES_PATH", getDefaultPurchasesPath()),
		OverlapThreshold: getEnvFloat("BEANWATCH_RATE_THRESHOLD", defaultOverlapThreshold),
		LookbackDays:     getEnvInt("BEANWATCH_LOOKBACK_DAYS", defaultLookbackDays),
		LowStockDays:     getEnvInt("BEANWATCH_LOW_STOCK_DAYS", defaultLowStockDays),
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	// Ensure purchases directory exists
	if err := ensureDir(filepath.Dir(cfg.PurchasesPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "beanwatch", ".env"),
			filepath.Join(home, ".beanwatch", ".env"),
		)
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "beanwatch.db"
	}
	return filepath.Join(home, ".config", "beanwatch", "beanwatch.db")
}

// getDefaultPurchasesPath returns the default path for the purchase log file.
func getDefaultPurchasesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "coffee.csv"
	}
	return filepath.Join(home, ".config", "beanwatch", "coffee.csv")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
