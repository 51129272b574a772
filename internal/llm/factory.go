package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizgen/internal/store"
)

// NewProvider creates the configured Provider using credential as its API
// key (falling back to the configured key when credential is empty).
// The result is wrapped with timeout, retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, credential string, eventRepo store.EventRepo) (Provider, error) {
	cfg = cfg.WithCredential(credential)

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		if cfg.Mock.ResponseFile == "" {
			base = NewMockProvider()
		} else {
			base, err = NewMockProviderFromFile(cfg.Mock.ResponseFile)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}

// Factory builds a Provider for a given credential. Consumers that receive
// the credential per request (the quiz generator) depend on this instead of
// a ready-made Provider.
type Factory func(ctx context.Context, credential string) (Provider, error)

// NewFactory binds cfg and eventRepo into a Factory.
func NewFactory(cfg Config, eventRepo store.EventRepo) Factory {
	return func(ctx context.Context, credential string) (Provider, error) {
		return NewProvider(ctx, cfg, credential, eventRepo)
	}
}

// StaticFactory always returns p, ignoring the credential.
func StaticFactory(p Provider) Factory {
	return func(context.Context, string) (Provider, error) {
		return p, nil
	}
}
