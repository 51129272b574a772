package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/ui/theme"
)

// AnswerProgress shows how much of a batch has been answered: a count,
// a bar, and one marker per question with the current one highlighted.
type AnswerProgress struct {
	Answered []bool
	Current  int
}

// NewAnswerProgress builds the tracker from answer slots; an empty slot is
// an unanswered question.
func NewAnswerProgress(answers []string, current int) AnswerProgress {
	p := AnswerProgress{Answered: make([]bool, len(answers)), Current: current}
	for i, a := range answers {
		p.Answered[i] = a != ""
	}
	return p
}

// Count returns the number of answered questions.
func (p AnswerProgress) Count() int {
	n := 0
	for _, a := range p.Answered {
		if a {
			n++
		}
	}
	return n
}

// Bar renders the count and a bar filling width cells.
func (p AnswerProgress) Bar(width int) string {
	total := len(p.Answered)
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("Answered %d/%d", p.Count(), total))

	cells := max(width-lipgloss.Width(label)-2, 4)
	filled := 0
	if total > 0 {
		filled = cells * p.Count() / total
	}

	return label + "  " +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled))
}

// Markers renders ● for answered and ○ for open questions.
func (p AnswerProgress) Markers() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	current := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	parts := make([]string, len(p.Answered))
	for i, a := range p.Answered {
		mark := "○"
		if a {
			mark = "●"
		}
		if i == p.Current {
			parts[i] = current.Render(mark)
		} else {
			parts[i] = dim.Render(mark)
		}
	}
	return strings.Join(parts, " ")
}
