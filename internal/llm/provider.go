package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider sends one prompt to a model and hands back what it wrote.
type Provider interface {
	// Generate performs a single call. With req.Schema set the vendor is
	// asked for structured output and the result is checked against the
	// schema before it is returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema is optional. Nil means free-form text.
	Schema *Schema

	// Zero values leave the vendor defaults in place.
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema document plus the name and description some
// vendors require alongside it. Name also keys the compiled-schema cache,
// so two different definitions must not share one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // as reported by the vendor
	StopReason string // StopEnd or StopMaxTokens
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// complete runs the post-call checks every vendor shares.
func complete(req Request, content json.RawMessage, stop string) error {
	if stop == StopMaxTokens {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return validateResponse(req.Schema, content)
}

// classifyStatus maps a vendor HTTP status onto the package errors.
// Status 0 stands for "no response at all".
func classifyStatus(provider string, status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case status == 0 || status >= http.StatusInternalServerError:
		return &ErrProviderUnavailable{Err: err}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s rejected the credential: %w", provider, err)
	default:
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
}
