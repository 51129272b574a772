package help

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

type section struct {
	title string
	keys  []layout.KeyHint
}

var sections = []section{
	{
		title: "New quiz",
		keys: []layout.KeyHint{
			{Key: "Tab / Shift+Tab", Description: "Move between fields"},
			{Key: "↑↓ Enter", Description: "Pick a proficiency level"},
			{Key: "Enter", Description: "Generate questions (button)"},
		},
	},
	{
		title: "Quiz",
		keys: []layout.KeyHint{
			{Key: "A B C D", Description: "Answer the current question"},
			{Key: "↑↓ Enter", Description: "Move and pick an option"},
			{Key: "← →", Description: "Previous / next question"},
			{Key: "S", Description: "Submit answers"},
		},
	},
	{
		title: "Results",
		keys: []layout.KeyHint{
			{Key: "↑↓ PgUp PgDn", Description: "Scroll the review"},
			{Key: "R / Enter", Description: "Start a new quiz"},
		},
	},
	{
		title: "Anywhere",
		keys: []layout.KeyHint{
			{Key: "?", Description: "Toggle this help"},
			{Key: "Ctrl+C", Description: "Quit"},
		},
	},
}

var _ screen.Screen = (*HelpScreen)(nil)

// HelpScreen is an overlay listing the key bindings.
type HelpScreen struct{}

// New creates the help overlay.
func New() *HelpScreen {
	return &HelpScreen{}
}

func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

func (h *HelpScreen) Title() string {
	return "Help"
}

func (h *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "?", "q", "enter":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HelpScreen) View(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(18)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("  " + theme.Label.Render(sec.title) + "\n")
		for _, k := range sec.keys {
			b.WriteString("    " + keyStyle.Render(k.Key) + descStyle.Render(k.Description) + "\n")
		}
		if !layout.IsCompactHeight(height) {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(height).
		Render(b.String())
}
