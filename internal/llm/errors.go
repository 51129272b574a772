package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingCredential = errors.New("API credential is required")
	ErrUnknownProvider   = errors.New("unknown LLM provider")
)

// ErrRateLimit is a 429 from the vendor. RetryAfter is zero when the
// vendor did not say how long to back off.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse carries model output that is not JSON or does not
// match the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return "model output rejected: " + e.Err.Error() }
func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx answers and transport failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return "LLM provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at the token cap. Content
// holds whatever was produced before the cut.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("model output truncated at the token limit after %d bytes", len(e.Content))
}

type ErrEmptyResponse struct {
	Provider string
}

func (e *ErrEmptyResponse) Error() string { return e.Provider + " returned no content" }

// IsTransient reports whether another attempt might succeed. That is the
// case for rate limits and outages only.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingCredential) || errors.Is(err, ErrUnknownProvider) {
		return false
	}
	if rl := (*ErrRateLimit)(nil); errors.As(err, &rl) {
		return true
	}
	if down := (*ErrProviderUnavailable)(nil); errors.As(err, &down) {
		// SDK transports surface our own cancellation as a network error.
		return !isContextErr(down.Err)
	}
	return false
}
