package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single LLM request. Zero means no client-side limit;
	// the remote service's own deadlines apply.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional. Points the SDK at a proxy or test server.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string // Optional.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays CYBERHYGIENE_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	if p := os.Getenv("CYBERHYGIENE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("CYBERHYGIENE_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	if k := os.Getenv("CYBERHYGIENE_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("CYBERHYGIENE_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if u := os.Getenv("CYBERHYGIENE_GEMINI_BASE_URL"); u != "" {
		cfg.Gemini.BaseURL = u
	}

	if k := os.Getenv("CYBERHYGIENE_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("CYBERHYGIENE_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if u := os.Getenv("CYBERHYGIENE_ANTHROPIC_BASE_URL"); u != "" {
		cfg.Anthropic.BaseURL = u
	}

	if k := os.Getenv("CYBERHYGIENE_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("CYBERHYGIENE_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("CYBERHYGIENE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("CYBERHYGIENE_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("CYBERHYGIENE_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if u := os.Getenv("CYBERHYGIENE_OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	return discover(DefaultConfig())
}

func discover(cfg Config) (Config, bool) {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// Resolve finishes a partially built Config: env vars are applied on top of
// base, and when the selected provider has no key and the provider was not
// pinned through CYBERHYGIENE_LLM_PROVIDER, the standard vendor key
// variables are probed. The result is validated.
func Resolve(base Config) (Config, error) {
	cfg := ApplyEnv(base)
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("CYBERHYGIENE_LLM_PROVIDER") == "" {
		if found, ok := discover(cfg); ok {
			return found, found.Validate()
		}
	}
	return Config{}, err
}

// Validate checks that the selected provider has its required API key set.
// Failures are *StartupConfigError.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return &StartupConfigError{Provider: c.Provider, EnvVar: "CYBERHYGIENE_GEMINI_API_KEY"}
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return &StartupConfigError{Provider: c.Provider, EnvVar: "CYBERHYGIENE_ANTHROPIC_API_KEY"}
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return &StartupConfigError{Provider: c.Provider, EnvVar: "CYBERHYGIENE_OPENAI_API_KEY"}
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return &StartupConfigError{Provider: c.Provider, EnvVar: "CYBERHYGIENE_OPENROUTER_API_KEY"}
		}
	case ProviderMock:
		// No API key needed.
	default:
		return &StartupConfigError{Provider: c.Provider, Err: fmt.Errorf("unknown LLM provider: %q", c.Provider)}
	}
	return nil
}
