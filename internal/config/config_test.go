package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cyberhygiene/internal/llm"
)

const sample = `
database: /tmp/ch.db
llm:
  provider: anthropic
  timeout: 45s
  anthropic:
    model: claude-sonnet
  openrouter:
    base_url: http://localhost:9000/v1
server:
  addr: ":9090"
  session_ttl: 10m
  allowed_origins:
    - http://localhost:3000
log:
  level: debug
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ch.db", f.Database)
	assert.Equal(t, "anthropic", f.LLM.Provider)
	assert.Equal(t, 45*time.Second, f.LLM.Timeout)
	assert.Equal(t, ":9090", f.Server.Addr)
	assert.Equal(t, 10*time.Minute, f.Server.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, f.Server.AllowedOrigins)
	assert.Equal(t, "debug", f.Log.Level)
	assert.Empty(t, f.Log.File)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "llm:\n  provider: gemini\n  temperature: 0.2\n"},
		{"api key in file", "llm:\n  gemini:\n    api_key: sk-123\n"},
		{"multiple documents", "log:\n  level: info\n---\nlog:\n  level: debug\n"},
		{"bad duration", "llm:\n  timeout: soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, File{}, f)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	f, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", f.LLM.Provider)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyLLM(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	base := llm.DefaultConfig()
	base.Anthropic.APIKey = "from-env"
	cfg := f.ApplyLLM(base)

	assert.Equal(t, llm.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	assert.Equal(t, "from-env", cfg.Anthropic.APIKey)
	assert.Equal(t, "http://localhost:9000/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, base.OpenRouter.Model, cfg.OpenRouter.Model)
	assert.Equal(t, base.Gemini, cfg.Gemini)
}

func TestApplyLLMZeroFile(t *testing.T) {
	base := llm.DefaultConfig()
	assert.Equal(t, base, File{}.ApplyLLM(base))
}
