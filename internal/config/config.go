// Package config loads the optional YAML settings file. API keys are never
// read from it; they come from the environment only.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/cyberhygiene/internal/llm"
)

// File is the on-disk configuration. Every field is optional.
type File struct {
	Database string `yaml:"database"`
	LLM      LLM    `yaml:"llm"`
	Server   Server `yaml:"server"`
	Log      Log    `yaml:"log"`
}

// LLM selects the provider and its non-secret settings.
type LLM struct {
	Provider   string        `yaml:"provider"`
	Timeout    time.Duration `yaml:"timeout"`
	Gemini     Model         `yaml:"gemini"`
	Anthropic  Model         `yaml:"anthropic"`
	OpenAI     Model         `yaml:"openai"`
	OpenRouter Model         `yaml:"openrouter"`
}

// Model overrides one provider's model and endpoint.
type Model struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Server configures the serve command.
type Server struct {
	Addr           string        `yaml:"addr"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// Log configures the slog handler.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Parse decodes a single YAML document. Unknown keys are an error.
func Parse(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return f, nil
}

// Load reads and parses path. An empty path yields the zero File.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// ApplyLLM overlays the file's LLM settings onto cfg. Empty values leave
// cfg untouched.
func (f File) ApplyLLM(cfg llm.Config) llm.Config {
	if f.LLM.Provider != "" {
		cfg.Provider = f.LLM.Provider
	}
	if f.LLM.Timeout > 0 {
		cfg.Timeout = f.LLM.Timeout
	}
	overlay(&cfg.Gemini.Model, &cfg.Gemini.BaseURL, f.LLM.Gemini)
	overlay(&cfg.Anthropic.Model, &cfg.Anthropic.BaseURL, f.LLM.Anthropic)
	overlay(&cfg.OpenAI.Model, &cfg.OpenAI.BaseURL, f.LLM.OpenAI)
	overlay(&cfg.OpenRouter.Model, &cfg.OpenRouter.BaseURL, f.LLM.OpenRouter)
	return cfg
}

func overlay(model, baseURL *string, m Model) {
	if m.Model != "" {
		*model = m.Model
	}
	if m.BaseURL != "" {
		*baseURL = m.BaseURL
	}
}
