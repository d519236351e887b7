// Package config loads the service configuration from the environment.
// The configuration is built once at startup and passed explicitly to
// constructors; there is no ambient global state.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the service needs at startup.
type Config struct {
	Port           int    `envconfig:"PORT" default:"5000"`
	SecretKey      string `envconfig:"SECRET_KEY" default:"dev-secret-key-change-in-production"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"104857600"` // 100 MiB

	// Provider selects the upload backend registered in internal/upload.
	Provider string `envconfig:"PROVIDER" default:"gofile"`

	// Optional webhook notified of successful uploads.
	WebhookURL       string        `envconfig:"WEBHOOK_URL"`
	WebhookAuthType  string        `envconfig:"WEBHOOK_AUTH_TYPE" default:"none"`
	WebhookAuthToken string        `envconfig:"WEBHOOK_AUTH_TOKEN"`
	WebhookTimeout   time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"30s"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads configuration from the environment. Variables may be plain
// (PORT, SECRET_KEY) or namespaced (RELAY_PORT, RELAY_SECRET_KEY).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("relay", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that would make the service
// unusable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadBytes)
	}
	if c.Provider == "" {
		return fmt.Errorf("provider must not be empty")
	}
	return nil
}

// MaxUploadMB returns the size cap in whole megabytes, for user-facing
// error messages.
func (c *Config) MaxUploadMB() int64 {
	return c.MaxUploadBytes / (1024 * 1024)
}
