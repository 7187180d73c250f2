package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration. It is filled from the
// config file and WORDIZ_LLM_* environment variables.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock".
	// Empty means discover from the standard API key variables.
	Provider string `mapstructure:"provider"`

	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Retry      RetryConfig    `mapstructure:"retry"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProviderConfig is the per-provider credential and model selection.
// BaseURL is honoured by the OpenAI-compatible providers only.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults and no provider.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// Resolve returns the config with a provider selected. An explicit provider
// is kept as is; otherwise the standard API key env vars are probed in
// priority order (Gemini, OpenAI, Anthropic, OpenRouter). It reports false
// when no provider could be found.
func (c Config) Resolve() (Config, bool) {
	if c.Provider != "" {
		return c, true
	}

	probes := []struct {
		provider string
		env      string
		target   *ProviderConfig
	}{
		{"gemini", "GEMINI_API_KEY", &c.Gemini},
		{"openai", "OPENAI_API_KEY", &c.OpenAI},
		{"anthropic", "ANTHROPIC_API_KEY", &c.Anthropic},
		{"openrouter", "OPENROUTER_API_KEY", &c.OpenRouter},
	}
	for _, p := range probes {
		if p.target.APIKey != "" {
			c.Provider = p.provider
			return c, true
		}
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			p.target.APIKey = k
			return c, true
		}
	}
	return c, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var pc ProviderConfig
	switch c.Provider {
	case "anthropic":
		pc = c.Anthropic
	case "openai":
		pc = c.OpenAI
	case "gemini":
		pc = c.Gemini
	case "openrouter":
		pc = c.OpenRouter
	case "mock":
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured: set WORDIZ_LLM_PROVIDER or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("WORDIZ_LLM_%s_API_KEY is required for the %s provider", upper(c.Provider), c.Provider)
	}
	return nil
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
