// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration for Brightcove catalog
// resolution.
type Config struct {
	// ClientID is the Brightcove OAuth client id
	ClientID string `json:"client_id"`
	// ClientSecret is the Brightcove OAuth client secret
	ClientSecret string `json:"client_secret"`
	// AccountID scopes all upstream requests
	AccountID string `json:"account_id"`
	// PolicyKey optionally enables the Playback API path (no OAuth)
	PolicyKey string `json:"policy_key"`

	// ConcurrentRequestLimit caps simultaneously in-flight upstream requests
	ConcurrentRequestLimit int `json:"concurrent_request_limit"`
	// RequestsPerSecond optionally rate-shapes upstream requests (0 = off)
	RequestsPerSecond float64 `json:"requests_per_second"`
	// RequestTimeout is the per-request HTTP timeout
	RequestTimeout time.Duration `json:"request_timeout"`

	// SkipScheduleCheck disables schedule-based visibility filtering
	SkipScheduleCheck bool `json:"skip_schedule_check"`

	// LogLevel sets the zerolog level ("debug", "info", ...)
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		ConcurrentRequestLimit: 20,
		RequestTimeout:         30 * time.Second,
		LogLevel:               "info",
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from bcsync.json in the current
// directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"bcsync.json",
		filepath.Join(os.Getenv("HOME"), ".config", "bcsync", "bcsync.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("BCSYNC_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("BCSYNC_CLIENT_SECRET"); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv("BCSYNC_ACCOUNT_ID"); v != "" {
		c.AccountID = v
	}
	if v := os.Getenv("BCSYNC_POLICY_KEY"); v != "" {
		c.PolicyKey = v
	}
	if v := os.Getenv("BCSYNC_CONCURRENT_REQUEST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ConcurrentRequestLimit = n
		}
	}
	if v := os.Getenv("BCSYNC_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("BCSYNC_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("BCSYNC_SKIP_SCHEDULE_CHECK"); v != "" {
		c.SkipScheduleCheck = v == "true" || v == "1"
	}
	if v := os.Getenv("BCSYNC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.ConcurrentRequestLimit <= 0 {
		return fmt.Errorf("concurrent_request_limit must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
