package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 120*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 6, cfg.Server.AnalyzePerMinute)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  analyze_per_minute: 2
gemini:
  model: gemini-custom
history:
  path: /tmp/audit-history.json
logging:
  level: debug
  format: console
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Server.AnalyzePerMinute)
	assert.Equal(t, "gemini-custom", cfg.Gemini.Model)
	assert.Equal(t, "/tmp/audit-history.json", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "test-key-123", cfg.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	cfg.Gemini.Model = ""
	assert.Error(t, cfg.Validate())
}
