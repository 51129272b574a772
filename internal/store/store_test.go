package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4", Purpose: "question-gen", InputTokens: 120, OutputTokens: 900, LatencyMs: 4000, Success: true},
		{Provider: "openai", Model: "gpt-4", Purpose: "question-gen", LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{Provider: "mock", Model: "mock", Purpose: "unknown", InputTokens: 1, OutputTokens: 2, LatencyMs: 1, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Model != "mock" {
		t.Errorf("expected newest event first, got model %q", got[0].Model)
	}
	if got[1].Success {
		t.Error("expected second event to be a failure")
	}
	if got[1].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q, want %q", got[1].ErrorMessage, "rate limited")
	}
	if got[2].InputTokens != 120 || got[2].OutputTokens != 900 {
		t.Errorf("tokens = %d/%d, want 120/900", got[2].InputTokens, got[2].OutputTokens)
	}
	if time.Since(got[0].Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", got[0].Timestamp)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query with limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 event with limit, got %d", len(limited))
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query with purpose: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 question-gen events, got %d", len(filtered))
	}
}

func TestQueryLLMEvents_TimeRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	now := base
	repo := &eventRepo{drv: s.drv, now: func() time.Time { return now }}

	for i := 0; i < 3; i++ {
		now = base.Add(time.Duration(i) * time.Hour)
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "question-gen", Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{
		From: base.Add(30 * time.Minute),
		To:   base.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event in range, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, base.Add(time.Hour))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "gpt-4", Purpose: "question-gen", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.Model != "gpt-4" {
		t.Fatalf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, events[0].ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gpt-4", Purpose: "question-gen", InputTokens: 100, OutputTokens: 1000, LatencyMs: 2000, Success: true},
		{Model: "gpt-4", Purpose: "question-gen", InputTokens: 100, OutputTokens: 800, LatencyMs: 4000, Success: true},
		{Model: "gpt-4", Purpose: "question-gen", LatencyMs: 10, Success: false},
		{Model: "gpt-4o-mini", Purpose: "ask", InputTokens: 50, OutputTokens: 60, LatencyMs: 100, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	top := byPurpose[0]
	if top.Purpose != "question-gen" || top.Calls != 3 {
		t.Errorf("top purpose = %+v, want question-gen with 3 calls", top)
	}
	if top.InputTokens != 200 || top.OutputTokens != 1800 {
		t.Errorf("tokens = %d/%d, want 200/1800", top.InputTokens, top.OutputTokens)
	}
	if top.AvgLatencyMs != 2003 {
		t.Errorf("avg latency = %d, want 2003", top.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
	// Failed calls are excluded from cost accounting.
	if byModel[0].Model != "gpt-4" || byModel[0].Calls != 2 {
		t.Errorf("top model = %+v, want gpt-4 with 2 calls", byModel[0])
	}
}

func TestNopEventRepo(t *testing.T) {
	var repo EventRepo = NopEventRepo{}
	if err := repo.AppendLLMRequest(context.Background(), LLMRequestEventData{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := repo.QueryLLMEvents(context.Background(), QueryOpts{})
	if err != nil || len(events) != 0 {
		t.Fatalf("expected no events, got %d (%v)", len(events), err)
	}
}
