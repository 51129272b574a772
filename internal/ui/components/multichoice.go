package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

var choiceLabels = quiz.Letters()

// MultiChoice is a lettered single-answer selector. The answer can be changed
// any number of times; Chosen is -1 until the first pick.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int
}

// NewMultiChoice creates a selector with chosen preselected (-1 for none).
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	m := MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
	}
	if chosen >= 0 && chosen < len(options) {
		m.Chosen = chosen
		m.Cursor = chosen
	}
	return m
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection. Letter keys pick directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space":
		if len(m.Options) > 0 {
			m.Chosen = m.Cursor
		}
	default:
		for i, l := range choiceLabels {
			if i < len(m.Options) && strings.EqualFold(key, l) {
				m.Cursor = i
				m.Chosen = i
			}
		}
	}

	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		if i >= len(choiceLabels) {
			break
		}
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		radio := "○"
		if i == m.Chosen {
			radio = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, radio, choiceLabels[i], opt)

		switch {
		case i == m.Chosen:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line))
		case i == m.Cursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ChosenLetter returns the letter of the chosen option, or "".
func (m MultiChoice) ChosenLetter() string {
	if m.Chosen < 0 || m.Chosen >= len(choiceLabels) {
		return ""
	}
	return choiceLabels[m.Chosen]
}
