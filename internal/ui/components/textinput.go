package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/ui/theme"
)

// TextInput is a bubbles textinput that ignores keys while blurred and can
// flag itself as missing after a rejected submit.
type TextInput struct {
	Model   textinput.Model
	missing bool
}

// NewTextInput builds an input of at most width cells; secret inputs echo
// bullets.
func NewTextInput(placeholder string, secret bool, width int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if secret {
		m.EchoMode, m.EchoCharacter = textinput.EchoPassword, '•'
	}
	if width > 0 {
		m.SetWidth(width)
	}
	return TextInput{Model: m}
}

func (t TextInput) Init() tea.Cmd { return textinput.Blink }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if !t.Model.Focused() {
			return t, nil
		}
		t.missing = false
	}
	m, cmd := t.Model.Update(msg)
	t.Model = m
	return t, cmd
}

func (t TextInput) View() string {
	if !t.missing {
		return t.Model.View()
	}
	return t.Model.View() + lipgloss.NewStyle().Foreground(theme.Error).Render("  ✗ required")
}

func (t TextInput) Value() string { return t.Model.Value() }

// Filled is false for empty and whitespace-only values.
func (t TextInput) Filled() bool { return strings.TrimSpace(t.Value()) != "" }

func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }
func (t *TextInput) Focus() tea.Cmd    { return t.Model.Focus() }
func (t *TextInput) Blur()             { t.Model.Blur() }
func (t TextInput) Focused() bool      { return t.Model.Focused() }

// MarkMissing shows the "required" flag until the next key press.
func (t *TextInput) MarkMissing() { t.missing = true }
