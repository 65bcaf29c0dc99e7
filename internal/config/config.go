// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server
	APIPort int

	// Storage
	MediaRoot string
	MediaURL  string

	// Logging
	LogLevel string
	LogDir   string

	// Parsing
	InboxAddress    string
	LocalTimezone   string
	DisplayTimezone string

	// Image processing
	MaxImageSizeMB    int
	MaxImageDimension int
	JPEGQuality       int

	// Uploads
	MaxUploadSizeMB int

	// Environment
	AppEnv string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Required: DATABASE_URL
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	var err error
	if cfg.APIPort, err = intEnv("API_PORT", 8080); err != nil {
		return nil, err
	}

	cfg.MediaRoot = stringEnv("MEDIA_ROOT", "./media")
	cfg.MediaURL = stringEnv("MEDIA_URL", "/media/")
	cfg.LogLevel = stringEnv("LOG_LEVEL", "info")
	cfg.LogDir = stringEnv("LOG_DIR", "./logs")

	cfg.InboxAddress = stringEnv("INBOX_ADDRESS", "memberenquiries@redcar-cleveland.gov.uk")
	cfg.LocalTimezone = stringEnv("LOCAL_TIMEZONE", "Europe/London")
	cfg.DisplayTimezone = stringEnv("DISPLAY_TIMEZONE", "Europe/London")

	if cfg.MaxImageSizeMB, err = intEnv("MAX_IMAGE_SIZE_MB", 2); err != nil {
		return nil, err
	}
	if cfg.MaxImageDimension, err = intEnv("MAX_IMAGE_DIMENSION", 2048); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality, err = intEnv("JPEG_QUALITY", 85); err != nil {
		return nil, err
	}
	if cfg.MaxUploadSizeMB, err = intEnv("MAX_UPLOAD_SIZE_MB", 10); err != nil {
		return nil, err
	}

	cfg.AppEnv = stringEnv("APP_ENV", "development")

	if err := cfg.validateTimezones(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateTimezones ensures the configured zone names resolve.
func (c *Config) validateTimezones() error {
	if _, err := time.LoadLocation(c.LocalTimezone); err != nil {
		return fmt.Errorf("LOCAL_TIMEZONE is not a valid timezone: %w", err)
	}
	if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
		return fmt.Errorf("DISPLAY_TIMEZONE is not a valid timezone: %w", err)
	}
	return nil
}

// LocalLocation returns the zone naive container timestamps are assumed in.
func (c *Config) LocalLocation() *time.Location {
	loc, err := time.LoadLocation(c.LocalTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DisplayLocation returns the zone used for display strings.
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
