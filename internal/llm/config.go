package llm

import (
	"fmt"
	"time"
)

const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects a vendor and carries the settings of every vendor, so a
// single file can switch between them by changing Provider alone.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Mock       MockConfig
	Retry      RetryConfig

	// Timeout covers one Generate call with all of its retries; zero
	// disables it.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor/model, passed through untouched
	BaseURL string
}

type MockConfig struct {
	ResponseFile string // replayed verbatim for every request
}

type RetryConfig struct {
	MaxAttempts int // 1 means no retries
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig talks to OpenAI's gpt-4 once per request, without retries
// or a deadline.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOpenAI,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// selected points at the key and model fields of the chosen vendor. Both
// are nil for the mock and for unknown names.
func (c *Config) selected() (key, model *string) {
	switch c.Provider {
	case ProviderAnthropic:
		return &c.Anthropic.APIKey, &c.Anthropic.Model
	case ProviderOpenAI:
		return &c.OpenAI.APIKey, &c.OpenAI.Model
	case ProviderGemini:
		return &c.Gemini.APIKey, &c.Gemini.Model
	case ProviderOpenRouter:
		return &c.OpenRouter.APIKey, &c.OpenRouter.Model
	}
	return nil, nil
}

// WithCredential returns a copy of c whose selected vendor uses key. An
// empty key keeps whatever was configured.
func (c Config) WithCredential(key string) Config {
	if slot, _ := c.selected(); slot != nil && key != "" {
		*slot = key
	}
	return c
}

func (c Config) APIKey() string {
	if key, _ := c.selected(); key != nil {
		return *key
	}
	return ""
}

func (c Config) Model() string {
	if c.Provider == ProviderMock {
		return "mock"
	}
	if _, model := c.selected(); model != nil {
		return *model
	}
	return ""
}

// Validate checks the vendor name and the retry and timeout settings.
// Keys are not checked since they may arrive with each request.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter, ProviderMock:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	switch {
	case c.Retry.MaxAttempts < 1:
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	case c.Timeout < 0:
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
