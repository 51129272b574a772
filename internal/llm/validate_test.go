package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

// testSchema describes a quiz option: a label, a letter and an optional
// weight.
func testSchema() *Schema {
	return &Schema{
		Name:        "test-option",
		Description: "A labelled answer option",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":   map[string]any{"type": "string"},
				"age":    map[string]any{"type": "integer", "minimum": 0},
				"letter": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"all fields", `{"name":"Ada","age":10,"letter":"A"}`, false},
		{"optional field omitted", `{"name":"Ada","age":10}`, false},
		{"required field missing", `{"name":"Ada"}`, true},
		{"wrong type", `{"name":"Ada","age":"ten"}`, true},
		{"value outside enum", `{"name":"Ada","age":10,"letter":"E"}`, true},
		{"below minimum", `{"name":"Ada","age":-1}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(invalid.Content) != tt.raw {
				t.Fatalf("content = %q, want %q", invalid.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_ArrayOfObjects(t *testing.T) {
	schema := &Schema{
		Name: "test-batch",
		Definition: map[string]any{
			"type":     "array",
			"minItems": 2,
			"items": map[string]any{
				"type":       "object",
				"properties": map[string]any{"text": map[string]any{"type": "string"}},
				"required":   []any{"text"},
			},
		},
	}

	if err := validateResponse(schema, json.RawMessage(`[{"text":"a"},{"text":"b"}]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`[{"text":"a"}]`)); err == nil {
		t.Fatal("expected error for too few items")
	}
	if err := validateResponse(schema, json.RawMessage(`[{"text":"a"},{"body":"b"}]`)); err == nil {
		t.Fatal("expected error for item without text")
	}
}

func TestCheckSchema_DecodedValue(t *testing.T) {
	decode := func(s string) any {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatal(err)
		}
		return v
	}

	if err := CheckSchema(testSchema(), decode(`{"name":"Dee","age":3}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckSchema(testSchema(), decode(`{"name":"Dee","age":-1}`)); err == nil {
		t.Fatal("expected error for negative age")
	}
}
