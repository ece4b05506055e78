package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "ingest-1", cfg.ServiceID)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "filesystem", cfg.StorageBackend)
	assert.Equal(t, 5*time.Minute, cfg.DefaultCooldown)
	assert.Equal(t, 0.001, cfg.DefaultEventCost)
	assert.Equal(t, 100, cfg.RetentionMaxAlerts)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxImageBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DEFAULT_COOLDOWN", "10m")
	t.Setenv("RETENTION_MAX_ALERTS", "250")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("DEFAULT_EVENT_COST", "0.05")

	cfg := Load()

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.DefaultCooldown)
	assert.Equal(t, 250, cfg.RetentionMaxAlerts)
	assert.True(t, cfg.NatsEnabled)
	assert.Equal(t, 0.05, cfg.DefaultEventCost)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("MATCHER_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.MatcherTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.DatabaseURL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing matcher url",
			mutate:  func(c *Config) { c.MatcherURL = "" },
			wantErr: "MATCHER_URL",
		},
		{
			name:    "unknown storage backend",
			mutate:  func(c *Config) { c.StorageBackend = "tape" },
			wantErr: "unknown storage backend",
		},
		{
			name: "s3 backend without credentials",
			mutate: func(c *Config) {
				c.StorageBackend = "s3"
			},
			wantErr: "S3_ACCESS_KEY",
		},
		{
			name: "notifier enabled without recipient",
			mutate: func(c *Config) {
				c.NotifierEnabled = true
				c.NotifyTo = ""
			},
			wantErr: "NOTIFY_TO",
		},
		{
			name:    "non-positive retention cap",
			mutate:  func(c *Config) { c.RetentionMaxAlerts = 0 },
			wantErr: "RETENTION_MAX_ALERTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
