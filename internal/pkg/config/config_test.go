package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 14*24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.EnforceExpiry)
	assert.Equal(t, "admin@admin.com", cfg.Auth.AdminEmail)
	assert.Equal(t, "1234", cfg.Auth.AdminPassword)
	assert.Equal(t, 5*time.Second, cfg.Geo.Timeout)
	assert.Equal(t, "local", cfg.Images.Store)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER":           "memory",
		"TOKEN_TTL":           "1h",
		"AUTH_ENFORCE_EXPIRY": "false",
		"ENV":                 "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.EnforceExpiry)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad driver":     {"DB_DRIVER": "sqlite"},
		"bad store":      {"IMAGE_STORE": "ftp"},
		"s3 w/o bucket":  {"IMAGE_STORE": "s3"},
		"bad ttl format": {"TOKEN_TTL": "forever"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
