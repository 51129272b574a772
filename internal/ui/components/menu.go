package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a single-choice vertical list. The cursor (Selected) skips
// disabled items; Chosen stays -1 until an item is confirmed.
type Menu struct {
	Items    []MenuItem
	Selected int
	Chosen   int
	Blurred  bool
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Chosen: -1}
	m.Selected = max(m.step(-1, 1), 0)
	return m
}

// step walks from i in direction dir to the next enabled item and returns
// its index, or -1 when there is none.
func (m Menu) step(i, dir int) int {
	for i += dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.Blurred {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter", "space":
		if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
			break
		}
		m.Chosen = m.Selected
		if act := m.Items[m.Chosen].Action; act != nil {
			return m, act()
		}
	}
	return m, nil
}

// Choose confirms the enabled item with the given label, reporting false
// if there is none.
func (m *Menu) Choose(label string) bool {
	for i := range m.Items {
		if m.Items[i].Disabled || m.Items[i].Label != label {
			continue
		}
		m.Selected, m.Chosen = i, i
		return true
	}
	return false
}

func (m Menu) ChosenLabel() string {
	if m.Chosen >= 0 && m.Chosen < len(m.Items) {
		return m.Items[m.Chosen].Label
	}
	return ""
}

func (m Menu) View() string {
	var (
		cursor   = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		disabled = lipgloss.NewStyle().Foreground(theme.TextDim)
		plain    = lipgloss.NewStyle().Foreground(theme.Text)
		b        strings.Builder
	)
	for i, item := range m.Items {
		dot := " "
		if i == m.Chosen {
			dot = "●"
		}
		switch {
		case i == m.Selected && !m.Blurred:
			b.WriteString(cursor.Render("  ▸ " + dot + " " + item.Label))
		case item.Disabled:
			b.WriteString(disabled.Render("    " + dot + " " + item.Label))
		default:
			b.WriteString(plain.Render("    " + dot + " " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
