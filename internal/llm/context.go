package llm

import "context"

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "question-gen". The
// label ends up in request logs and stored events.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if purpose, _ := ctx.Value(purposeKey{}).(string); purpose != "" {
		return purpose
	}
	return "unknown"
}
