package store

import (
	"context"
	"time"
)

// QueryOpts filters QueryLLMEvents. Zero values mean "no filter".
type QueryOpts struct {
	Limit   int
	Purpose string
	From    time.Time
	To      time.Time
}

// LLMRequestEventData is the metadata of one provider call. Prompt text,
// model output and credentials are deliberately absent.
type LLMRequestEventData struct {
	Provider, Model, Purpose  string
	InputTokens, OutputTokens int
	LatencyMs                 int64
	Success                   bool
	ErrorMessage              string
}

type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

type PurposeUsage struct {
	Purpose                   string
	Calls                     int
	InputTokens, OutputTokens int
	AvgLatencyMs              int64
}

type ModelUsage struct {
	Model                     string
	Calls                     int
	InputTokens, OutputTokens int
}

// EventRepo is the request log. Queries return newest events first and
// GetLLMEvent returns nil, nil for an unknown id.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// NopEventRepo is the log used with --no-log.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error   { return nil }
func (NopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) { return nil, nil }
func (NopEventRepo) GetLLMEvent(context.Context, int) (*LLMEvent, error)           { return nil, nil }
func (NopEventRepo) LLMUsageByPurpose(context.Context) ([]PurposeUsage, error)     { return nil, nil }
func (NopEventRepo) LLMUsageByModel(context.Context) ([]ModelUsage, error)         { return nil, nil }
