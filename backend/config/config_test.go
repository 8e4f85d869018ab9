package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigNormalizesValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("QUERY_TIMEOUT", "3s")
	t.Setenv("STATS_TIMEOUT", "500ms")
	t.Setenv("CASCADE_DELETES", "true")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.StatsTimeout)
	assert.True(t, cfg.CascadeDeletes)
	assert.False(t, cfg.AdminConfigured())
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestAdminConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"username only", Config{AdminUsername: "admin"}, false},
		{"plain password", Config{AdminUsername: "admin", AdminPassword: "secret"}, true},
		{"hashed password", Config{AdminUsername: "admin", AdminPasswordHash: "$2a$10$abc"}, true},
		{"password only", Config{AdminPassword: "secret"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.AdminConfigured())
		})
	}
}
