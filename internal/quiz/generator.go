package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/quizgen/internal/llm"
)

// Purpose tags generation requests in the request-event log.
const Purpose = "question-gen"

// ProviderFactory yields a provider bound to the user's credential.
type ProviderFactory = llm.Factory

// Config controls generation requests.
type Config struct {
	// MaxTokens caps the response. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Zero uses the provider default.
	Temperature float64
}

// DefaultConfig leaves both knobs at the provider defaults.
func DefaultConfig() Config {
	return Config{}
}

// Request is one generation attempt.
type Request struct {
	Subject     string
	Proficiency Proficiency
	Credential  string
}

// Generator turns a subject and level into a validated question batch with
// one remote call.
type Generator struct {
	factory ProviderFactory
	config  Config
	logger  *slog.Logger
}

// New creates a Generator.
func New(factory ProviderFactory, cfg Config) *Generator {
	return &Generator{
		factory: factory,
		config:  cfg,
		logger:  slog.Default().With("component", "quiz"),
	}
}

// Generate asks the model for a batch and validates it. Remote failures
// are returned as *TransportError; malformed output as *FormatError or
// *ShapeError. Output cut off at the token limit is a *FormatError.
func (g *Generator) Generate(ctx context.Context, req Request) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	provider, err := g.factory(ctx, req.Credential)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(req.Subject, req.Proficiency)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		g.logger.WarnContext(ctx, "model output truncated", "bytes", len(truncated.Content))
		return nil, &FormatError{Err: err}
	}
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	questions, err := ParseQuestions(resp.Text())
	if err != nil {
		g.logger.WarnContext(ctx, "rejected model output", "model", resp.Model, "error", err)
		return nil, err
	}

	g.logger.InfoContext(ctx, "generated questions",
		"subject", req.Subject,
		"proficiency", req.Proficiency,
		"count", len(questions),
	)
	return questions, nil
}
