package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_ENV_FLOAT"

	tests := []struct {
		name       string
		envVal     string
		defaultVal float64
		want       float64
	}{
		{"Valid", "4.5", 3.0, 4.5},
		{"Invalid", "plenty", 3.0, 3.0},
		{"NonPositive", "-1", 3.0, 3.0},
		{"Empty", "", 3.0, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvFloat(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_ENV_INT"

	tests := []struct {
		name       string
		envVal     string
		defaultVal int
		want       int
	}{
		{"Valid", "14", 30, 14},
		{"Invalid", "soon", 30, 30},
		{"Zero", "0", 30, 30},
		{"Empty", "", 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvInt(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	dbPath := getDefaultDatabasePath()
	expectedDB := filepath.Join(home, ".config", "beanwatch", "beanwatch.db")
	if dbPath != expectedDB {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", dbPath, expectedDB)
	}

	logPath := getDefaultPurchasesPath()
	expectedLog := filepath.Join(home, ".config", "beanwatch", "coffee.csv")
	if logPath != expectedLog {
		t.Errorf("getDefaultPurchasesPath() = %q, want %q", logPath, expectedLog)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	// Basic check that it contains current directory
	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestLoad(t *testing.T) {
	// Use temp dir for paths to avoid permission issues
	tmpDir := t.TempDir()
	os.Setenv("BEANWATCH_DB_PATH", filepath.Join(tmpDir, "beanwatch.db"))
	os.Setenv("BEANWATCH_PURCHASES_PATH", filepath.Join(tmpDir, "coffee.csv"))
	os.Setenv("BEANWATCH_RATE_THRESHOLD", "4.0")
	defer os.Unsetenv("BEANWATCH_DB_PATH")
	defer os.Unsetenv("BEANWATCH_PURCHASES_PATH")
	defer os.Unsetenv("BEANWATCH_RATE_THRESHOLD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OverlapThreshold != 4.0 {
		t.Errorf("OverlapThreshold = %v, want 4.0", cfg.OverlapThreshold)
	}
	if cfg.LookbackDays != defaultLookbackDays {
		t.Errorf("LookbackDays = %v, want %v", cfg.LookbackDays, defaultLookbackDays)
	}
	if cfg.LowStockDays != defaultLowStockDays {
		t.Errorf("LowStockDays = %v, want %v", cfg.LowStockDays, defaultLowStockDays)
	}

	// Directories for file-backed paths are created eagerly
	if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
		t.Error("config directories were not created")
	}
}
