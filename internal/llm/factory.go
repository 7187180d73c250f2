package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/metrics"
	"github.com/abhisek/wordiz/internal/store"
)

// Deps are the optional collaborators of the provider decorators.
type Deps struct {
	Events  store.EventRepo
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewProvider creates a Provider from configuration, wrapped so that
// calls flow caller → tracing → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, deps.Events, deps.Metrics, deps.Log)
	retried := WithRetry(logged, cfg.Retry, deps.Log)
	return WithTracing(WithTimeout(retried, cfg.Timeout), cfg.Provider), nil
}
