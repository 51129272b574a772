// Package screen holds the contract between the app and its screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/session"
	"github.com/abhisek/quizgen/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the area between the
// header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with text fields. While
// CapturingText is true the "?" shortcut reaches the screen as a
// character.
type InputCapturer interface {
	CapturingText() bool
}

// StepChangedMsg asks the app to swap the base screen for the one that
// matches Step.
type StepChangedMsg struct {
	Step session.Step
}

func StepChanged(step session.Step) tea.Cmd {
	return func() tea.Msg { return StepChangedMsg{Step: step} }
}
