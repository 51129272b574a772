package layout

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"quizgen", 10, "quizgen"},
		{"quizgen", 7, "quizgen"},
		{"quizgen", 5, "quiz…"},
		{"quizgen", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderHeaderTruncatesStatus(t *testing.T) {
	header := RenderHeader("Quiz", "openrouter · "+strings.Repeat("x", 200), 90)
	if strings.Contains(header, strings.Repeat("x", 40)) {
		t.Fatal("expected long status to be truncated")
	}
	if !strings.Contains(header, "…") {
		t.Fatal("expected ellipsis in truncated status")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Fatal("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Fatal("expected minimum size to fit")
	}
}
