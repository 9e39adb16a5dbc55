package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "smartpark/libs/config"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"SMARTPARK_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string `yaml:"dsn" env:"SMARTPARK_POSTGRES_DSN"`
		MaxOpenConns int    `yaml:"maxOpenConns" env:"SMARTPARK_POSTGRES_MAX_OPEN_CONNS"`
		MaxIdleConns int    `yaml:"maxIdleConns" env:"SMARTPARK_POSTGRES_MAX_IDLE_CONNS"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"SMARTPARK_REDIS_ADDR"`
		Password string `yaml:"password" env:"SMARTPARK_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"SMARTPARK_REDIS_DB"`
	} `yaml:"redis"`
	JWT struct {
		Secret           string `yaml:"secret" env:"SMARTPARK_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"SMARTPARK_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
	Parking struct {
		HourlyRate   float64       `yaml:"hourlyRate" env:"SMARTPARK_HOURLY_RATE"`
		OccupancyTTL time.Duration `yaml:"occupancyTTL" env:"SMARTPARK_OCCUPANCY_TTL"`
	} `yaml:"parking"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.JWT.ExpiresInMinutes = 60
	cfg.Parking.HourlyRate = 500
	cfg.Parking.OccupancyTTL = 24 * time.Hour

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}
	if cfg.Parking.HourlyRate <= 0 {
		cfg.Parking.HourlyRate = 500
	}
	if cfg.Parking.OccupancyTTL <= 0 {
		cfg.Parking.OccupancyTTL = 24 * time.Hour
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}
