package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "gofile", cfg.Provider)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.Empty(t, cfg.WebhookURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("RELAY_PROVIDER", "minio")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, "minio", cfg.Provider)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"zero size cap", func(c *Config) { c.MaxUploadBytes = 0 }},
		{"empty provider", func(c *Config) { c.Provider = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMaxUploadMB(t *testing.T) {
	cfg := &Config{MaxUploadBytes: 100 * 1024 * 1024}
	assert.Equal(t, int64(100), cfg.MaxUploadMB())
}
