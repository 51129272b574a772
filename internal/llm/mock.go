package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MockResponse is one scripted reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Wait holds the reply back until the channel closes or ctx ends.
	Wait <-chan struct{}
}

// MockProvider replays scripted replies in order. Once the script runs
// out it keeps answering with the sticky reply, if one is set, and
// otherwise reports the provider as unavailable. It is used by tests and
// by the "mock" provider for offline runs.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	sticky *MockResponse
	seen   []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// NewMockProviderFromFile answers every request with the bytes of path.
func NewMockProviderFromFile(path string) (*MockProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mock response: %w", err)
	}
	return NewMockProvider().Repeat(MockResponse{Content: data}), nil
}

// Repeat sets the reply served after the script is exhausted.
func (m *MockProvider) Repeat(r MockResponse) *MockProvider {
	m.mu.Lock()
	m.sticky = &r
	m.mu.Unlock()
	return m
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen = append(m.seen, req)
	if len(m.script) > 0 {
		r := m.script[0]
		m.script = m.script[1:]
		return r, true
	}
	if m.sticky != nil {
		return *m.sticky, true
	}
	return MockResponse{}, false
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	r, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock script exhausted")}
	}

	if r.Wait != nil {
		select {
		case <-r.Wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many requests the mock has received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

// LastCall returns the latest request received, if any.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.seen) == 0 {
		return Request{}, false
	}
	return m.seen[len(m.seen)-1], true
}
