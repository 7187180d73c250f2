// Package config loads wordiz settings from config.yaml and WORDIZ_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/wordiz/internal/cache"
	"github.com/abhisek/wordiz/internal/exercisegen"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/logger"
	"github.com/abhisek/wordiz/internal/tracing"
)

// EnvPrefix prefixes every environment override, e.g. WORDIZ_SERVER_ADDR.
const EnvPrefix = "WORDIZ"

type Config struct {
	// DB is the SQLite path. Empty means the XDG default.
	DB string `mapstructure:"db"`

	// Learner is the default name printed on certificates.
	Learner string `mapstructure:"learner"`

	LLM         llm.Config         `mapstructure:"llm"`
	Generation  exercisegen.Config `mapstructure:"generation"`
	Log         logger.Config      `mapstructure:"log"`
	Tracing     tracing.Config     `mapstructure:"tracing"`
	Cache       cache.Config       `mapstructure:"cache"`
	Server      ServerConfig       `mapstructure:"server"`
	Speech      SpeechConfig       `mapstructure:"speech"`
	Certificate CertificateConfig  `mapstructure:"certificate"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`

	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RateLimitConfig is a per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type SpeechConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Command forces a speech binary ("espeak", "espeak-ng", "say").
	// Empty probes the PATH.
	Command string `mapstructure:"command"`

	// Rate is words per minute; 0 keeps the engine default.
	Rate int `mapstructure:"rate"`
}

type CertificateConfig struct {
	// FontPath is an optional TTF used instead of the built-in Go fonts.
	FontPath string `mapstructure:"font_path"`

	// Dir is where certificates are written when no path is given.
	Dir string `mapstructure:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:        llm.DefaultConfig(),
		Generation: exercisegen.DefaultConfig(),
		Log:        logger.DefaultConfig(),
		Tracing:    tracing.DefaultConfig(),
		Cache:      cache.DefaultConfig(),
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			AllowedOrigins:  []string{"*"},
			RateLimit:       RateLimitConfig{RequestsPerSecond: 5, Burst: 20},
			ShutdownTimeout: 10 * time.Second,
		},
		Speech:      SpeechConfig{Enabled: true},
		Certificate: CertificateConfig{Dir: "."},
	}
}

// Dir returns $XDG_CONFIG_HOME/wordiz, or "" when no home can be found.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wordiz")
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in Dir() and the working directory, and a
// missing file is not an error. Environment variables override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short forms used by the rest of the tooling.
	_ = v.BindEnv("db", "WORDIZ_DB")
	_ = v.BindEnv("cache.redis_addr", "WORDIZ_REDIS_ADDR", "WORDIZ_CACHE_REDIS_ADDR")
	_ = v.BindEnv("tracing.endpoint", "WORDIZ_TRACING_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("server.rate_limit values must not be negative")
	}
	if c.Generation.Concurrency < 1 {
		return fmt.Errorf("generation.concurrency must be at least 1")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0,1], got %v", c.Tracing.SampleRatio)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db", d.DB)
	v.SetDefault("learner", d.Learner)

	v.SetDefault("llm.provider", d.LLM.Provider)
	for name, pc := range map[string]llm.ProviderConfig{
		"anthropic":  d.LLM.Anthropic,
		"openai":     d.LLM.OpenAI,
		"gemini":     d.LLM.Gemini,
		"openrouter": d.LLM.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("generation.max_tokens", d.Generation.MaxTokens)
	v.SetDefault("generation.temperature", d.Generation.Temperature)
	v.SetDefault("generation.concurrency", d.Generation.Concurrency)
	v.SetDefault("generation.attempts", d.Generation.Attempts)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.insecure", d.Tracing.Insecure)
	v.SetDefault("tracing.sample_ratio", d.Tracing.SampleRatio)

	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", d.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", d.Cache.RedisDB)
	v.SetDefault("cache.prefix", d.Cache.Prefix)
	v.SetDefault("cache.ttl", d.Cache.TTL)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.rate_limit.requests_per_second", d.Server.RateLimit.RequestsPerSecond)
	v.SetDefault("server.rate_limit.burst", d.Server.RateLimit.Burst)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("speech.enabled", d.Speech.Enabled)
	v.SetDefault("speech.command", d.Speech.Command)
	v.SetDefault("speech.rate", d.Speech.Rate)

	v.SetDefault("certificate.font_path", d.Certificate.FontPath)
	v.SetDefault("certificate.dir", d.Certificate.Dir)
}
