package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"TEST_POSTGRES_DSN"`
	} `yaml:"database"`
	Parking struct {
		HourlyRate float64       `yaml:"hourlyRate"`
		CacheTTL   time.Duration `yaml:"cacheTTL"`
	} `yaml:"parking"`
	Debug bool `yaml:"debug"`
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TEST_POSTGRES_DSN", "postgres://localhost/smartpark")
	t.Setenv("PARKING_HOURLYRATE", "750")
	t.Setenv("PARKING_CACHETTL", "30m")
	t.Setenv("DEBUG", "true")

	cfg := &testConfig{}
	if err := Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "postgres://localhost/smartpark" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Parking.HourlyRate != 750 {
		t.Errorf("hourly rate = %v, want 750", cfg.Parking.HourlyRate)
	}
	if cfg.Parking.CacheTTL != 30*time.Minute {
		t.Errorf("cache ttl = %v, want 30m", cfg.Parking.CacheTTL)
	}
	if !cfg.Debug {
		t.Error("debug = false, want true")
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("http:\n  port: \"8081\"\ndatabase:\n  dsn: file-dsn\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_POSTGRES_DSN", "env-dsn")

	cfg := &testConfig{}
	if err := Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != "8081" {
		t.Errorf("port = %q, want 8081", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "env-dsn" {
		t.Errorf("dsn = %q, want env override", cfg.Database.DSN)
	}
}

func TestLoadRejectsNonPointer(t *testing.T) {
	if err := Load(testConfig{}); err == nil {
		t.Fatal("expected error for non-pointer target")
	}
	if err := Load(nil); err == nil {
		t.Fatal("expected error for nil target")
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("PARKING_CACHETTL", "not-a-duration")

	cfg := &testConfig{}
	if err := Load(cfg); err == nil {
		t.Fatal("expected parse error for bad duration")
	}
}
