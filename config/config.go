// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to the SQLite festival catalog

	// Observation site: the deployment serves one locality
	Latitude  float64 // Degrees north, [-90, 90]
	Longitude float64 // Degrees east, [-180, 180]
	Timezone  string  // IANA zone name, e.g. Asia/Kolkata
	Region    string  // Default festival region when the request has none

	// Ephemeris source
	Ephemeris        string        // local, remote
	EphemerisURL     string        // Base URL, required when remote
	EphemerisTimeout time.Duration // Per-request timeout for the remote client

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Ephemeris source constants
const (
	EphemerisLocal  = "local"
	EphemerisRemote = "remote"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/panchang.db")

	// Observation site defaults to Bengaluru
	cfg.Latitude = getEnvFloat("LATITUDE", 12.9716)
	cfg.Longitude = getEnvFloat("LONGITUDE", 77.5946)
	cfg.Timezone = getEnv("TIMEZONE", "Asia/Kolkata")
	cfg.Region = getEnv("REGION", "all")

	// Ephemeris source
	cfg.Ephemeris = getEnv("EPHEMERIS", EphemerisLocal)
	cfg.EphemerisURL = getEnv("EPHEMERIS_URL", "")
	cfg.EphemerisTimeout = getEnvDuration("EPHEMERIS_TIMEOUT", 10*time.Second)

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	if c.Latitude < -90 || c.Latitude > 90 {
		errs = append(errs, fmt.Errorf("LATITUDE must be in [-90, 90], got %v", c.Latitude))
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		errs = append(errs, fmt.Errorf("LONGITUDE must be in [-180, 180], got %v", c.Longitude))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a valid IANA zone: %w", c.Timezone, err))
	}

	switch c.Ephemeris {
	case EphemerisLocal:
	case EphemerisRemote:
		if c.EphemerisURL == "" {
			errs = append(errs, errors.New("EPHEMERIS_URL is required when EPHEMERIS=remote"))
		}
	default:
		errs = append(errs, fmt.Errorf("EPHEMERIS must be one of: local, remote; got %q", c.Ephemeris))
	}

	if c.EphemerisTimeout <= 0 {
		errs = append(errs, fmt.Errorf("EPHEMERIS_TIMEOUT must be positive, got %v", c.EphemerisTimeout))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Location resolves the configured timezone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat reads an environment variable as a float with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration reads an environment variable as a duration ("10s", "1m")
// with a default fallback.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
