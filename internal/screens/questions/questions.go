package questions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/session"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

var _ screen.Screen = (*QuestionsScreen)(nil)

// QuestionsScreen shows the generated questions one at a time and records
// the user's choices in the session.
type QuestionsScreen struct {
	sess      *session.Session
	questions []quiz.Question
	answers   []string
	index     int
	choice    components.MultiChoice

	// confirming is set after a submit request with unanswered questions.
	confirming bool
	errMsg     string
}

// New creates the screen from the session's quiz state.
func New(sess *session.Session) *QuestionsScreen {
	s := &QuestionsScreen{sess: sess}
	if st, ok := sess.State().(session.QuizState); ok {
		s.questions = st.Questions
		s.answers = st.Answers
	}
	s.load(0)
	return s
}

func (s *QuestionsScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionsScreen) Title() string {
	return "Quiz"
}

func (s *QuestionsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "S", Description: "Submit anyway"},
			{Key: "any key", Description: "Keep answering"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "?", Description: "Help"},
	}
}

func (s *QuestionsScreen) load(i int) {
	if len(s.questions) == 0 {
		return
	}
	s.index = i
	q := s.questions[i]
	chosen := -1
	if idx, ok := quiz.LetterIndex(s.answers[i]); ok {
		chosen = idx
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, chosen)
}

func (s *QuestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.questions) == 0 {
		return s, nil
	}

	key := kmsg.String()
	if s.confirming {
		s.confirming = false
		if key == "s" {
			return s, s.submit()
		}
		return s, nil
	}

	switch key {
	case "left", "h", "shift+tab":
		if s.index > 0 {
			s.load(s.index - 1)
		}
		return s, nil
	case "right", "l", "tab":
		if s.index < len(s.questions)-1 {
			s.load(s.index + 1)
		}
		return s, nil
	case "s":
		if s.unanswered() > 0 {
			s.confirming = true
			return s, nil
		}
		return s, s.submit()
	}

	before := s.choice.Chosen
	s.choice, _ = s.choice.Update(msg)
	if s.choice.Chosen != before {
		return s, s.record()
	}
	return s, nil
}

// record stores the current choice and moves on to the next question.
func (s *QuestionsScreen) record() tea.Cmd {
	letter := s.choice.ChosenLetter()
	if err := s.sess.Answer(s.index, letter); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.answers[s.index] = letter
	if s.index < len(s.questions)-1 {
		s.load(s.index + 1)
	}
	return nil
}

func (s *QuestionsScreen) submit() tea.Cmd {
	if _, err := s.sess.Submit(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return screen.StepChanged(session.StepResults)
}

func (s *QuestionsScreen) unanswered() int {
	n := 0
	for _, a := range s.answers {
		if a == "" {
			n++
		}
	}
	return n
}

func (s *QuestionsScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No questions loaded.")
	}

	var b strings.Builder

	progress := components.NewAnswerProgress(s.answers, s.index)
	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.index+1, len(s.questions)))
	b.WriteString(info)
	b.WriteString("\n")

	b.WriteString("  " + progress.Bar(width-6))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width - 4).
		PaddingLeft(2).
		Render(s.choice.View()))
	b.WriteString("\n")

	b.WriteString("  " + progress.Markers())
	b.WriteString("\n\n")

	switch {
	case s.confirming:
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("  %d unanswered. Unanswered questions count as wrong. Press S again to submit.", s.unanswered())))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render("  " + s.errMsg))
	case s.unanswered() == 0:
		b.WriteString(theme.Hint.Render("  All questions answered. Press S to submit."))
	}

	return b.String()
}
