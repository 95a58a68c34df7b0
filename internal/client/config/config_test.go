package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.APIBaseURL)
	assert.Equal(t, "http://localhost:3000", c.FrontURL)
	assert.Equal(t, "plana.db", c.DatabasePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, float64(10), c.RateLimit)
	assert.Equal(t, "slog", c.LogBackend)
	assert.Equal(t, "templates", c.TemplatesDir)
	assert.False(t, c.S3.Enabled())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"plana"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestCASServiceURL(t *testing.T) {
	c := Config{FrontURL: "http://localhost:3000"}
	assert.Equal(t, "http://localhost:3000/cas-register", c.CASServiceURL())
}
