package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/session"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

var _ screen.Screen = (*ResultsScreen)(nil)

// ResultsScreen shows the score, a verdict and a per-question review.
type ResultsScreen struct {
	sess      *session.Session
	score     int
	questions []quiz.Question
	offset    int

	// lastHeight is the review height from the most recent View, used to
	// clamp scrolling.
	lastHeight int
	lastLines  int
}

// New creates the screen from the session's results state.
func New(sess *session.Session) *ResultsScreen {
	s := &ResultsScreen{sess: sess}
	if st, ok := sess.State().(session.ResultsState); ok {
		s.score = st.Score
		s.questions = st.Questions
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Restart"},
		{Key: "?", Description: "Help"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.scroll(-1)
	case "down", "j":
		s.scroll(1)
	case "pgup":
		s.scroll(-max(s.lastHeight-1, 1))
	case "pgdown", "space":
		s.scroll(max(s.lastHeight-1, 1))
	case "home", "g":
		s.offset = 0
	case "r", "enter":
		s.sess.Restart()
		return s, screen.StepChanged(session.StepInput)
	}
	return s, nil
}

func (s *ResultsScreen) scroll(delta int) {
	s.offset += delta
	limit := s.lastLines - s.lastHeight
	if s.lastHeight > 0 && s.offset > limit {
		s.offset = limit
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *ResultsScreen) View(width, height int) string {
	var b strings.Builder

	total := len(s.questions)
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Your Score: %d / %d", s.score, total)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(quiz.Verdict(s.score, total)))
	b.WriteString("\n\n")

	head := b.String()
	reviewHeight := height - lipgloss.Height(head)
	if reviewHeight < 1 {
		reviewHeight = 1
	}

	lines := s.reviewLines(width - 4)
	s.lastHeight = reviewHeight
	s.lastLines = len(lines)

	start := min(s.offset, max(len(lines)-reviewHeight, 0))
	end := min(start+reviewHeight, len(lines))
	b.WriteString(strings.Join(lines[start:end], "\n"))

	return b.String()
}

// reviewLines renders every question's review as individual lines so the
// list can be scrolled.
func (s *ResultsScreen) reviewLines(width int) []string {
	text := lipgloss.NewStyle().Width(width - 10)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	var out []string
	for i, q := range s.questions {
		mark := theme.Correct.Render("✓")
		if !q.IsCorrect() {
			mark = theme.Incorrect.Render("✗")
		}

		var item strings.Builder
		item.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			fmt.Sprintf("  %s %2d. ", mark, i+1),
			text.Foreground(theme.Text).Bold(true).Render(q.Text),
		))
		item.WriteString("\n")

		item.WriteString("       " + label.Render("Your answer: ") + quiz.DisplayAnswer(q, q.UserAnswer))
		item.WriteString("\n")
		if !q.IsCorrect() {
			correct := q.CorrectAnswer
			item.WriteString("       " + label.Render("Correct answer: ") + theme.Correct.Render(quiz.DisplayAnswer(q, &correct)))
			item.WriteString("\n")
		}
		item.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			"       "+label.Render("Advice: "),
			text.Width(width-15).Render(q.Advice),
		))
		item.WriteString("\n")

		out = append(out, strings.Split(item.String(), "\n")...)
	}
	return out
}
