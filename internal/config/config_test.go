package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	m, err := NewManager()
	require.NoError(t, err)
	return m
}

func TestDefaults(t *testing.T) {
	m := newTestManager(t)
	cfg := m.GetConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 512, cfg.Cache.MemorySize)
	assert.Empty(t, cfg.Cache.RedisURL, "Redis tier is off by default")
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.NoError(t, m.Validate())
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("CDS_SERVER_PORT", "9090")
	t.Setenv("CDS_LOGGING_LEVEL", "debug")

	m, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, 9090, m.GetConfig().Server.Port)
	assert.Equal(t, "debug", m.GetConfig().Logging.Level)
	assert.NoError(t, m.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		error string
	}{
		{
			name:  "bad port",
			env:   map[string]string{"CDS_SERVER_PORT": "0"},
			error: "invalid server port",
		},
		{
			name:  "bad log level",
			env:   map[string]string{"CDS_LOGGING_LEVEL": "verbose"},
			error: "invalid log level",
		},
		{
			name:  "bad rate limit",
			env:   map[string]string{"CDS_RATE_LIMIT_REQUESTS_PER_SECOND": "0"},
			error: "invalid rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			m, err := NewManager()
			require.NoError(t, err)
			assert.ErrorContains(t, m.Validate(), tt.error)
		})
	}
}
