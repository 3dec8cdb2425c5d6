package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "Enter a command: ", cfg.Console.Prompt)
	assert.Equal(t, "Welcome to the Ecommerce Console App", cfg.Console.Greeting)
	assert.Equal(t, os.FileMode(0o644), cfg.Export.FileMode)
	assert.Equal(t, "ledger.events", cfg.NATS.Subject)
	assert.Equal(t, 2*time.Second, cfg.NATS.PublishTimeout)
	assert.False(t, cfg.NATS.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPORT_FILE_MODE", "0600")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("NATS_PUBLISH_TIMEOUT", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, os.FileMode(0o600), cfg.Export.FileMode)
	assert.True(t, cfg.NATS.Enabled())
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.NATS.PublishTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("file mode", func(t *testing.T) {
		t.Setenv("EXPORT_FILE_MODE", "rw-r--r--")
		_, err := Load()
		assert.ErrorContains(t, err, "EXPORT_FILE_MODE")
	})

	t.Run("publish timeout", func(t *testing.T) {
		t.Setenv("NATS_PUBLISH_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "NATS_PUBLISH_TIMEOUT")
	})
}
