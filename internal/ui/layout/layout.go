// Package layout draws the chrome around every screen: a header bar with
// the app name and the provider in use, a footer listing the active key
// bindings, and the fallback shown when the terminal is too small.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Screens drop decorative spacing below this height.
	CompactHeightThreshold = 30
)

type KeyHint struct {
	Key         string
	Description string
}

func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small (%d x %d).\n\nquizgen needs at least %d x %d,\nplease enlarge the window.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(text))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader centres title between the app name and status. status is
// cut to a third of the width.
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  quizgen")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(Truncate(status, width/3))

	inner := max(width-4, 0)
	pad := max((inner-lipgloss.Width(mid))/2-lipgloss.Width(name), 1)
	rest := max(inner-lipgloss.Width(name)-pad-lipgloss.Width(mid)-lipgloss.Width(info), 1)

	line := name + strings.Repeat(" ", pad) + mid + strings.Repeat(" ", rest) + info
	return bar(width).Render(line)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content all
// rows the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Truncate fits s into width cells, ending in "…" when it had to cut.
func Truncate(s string, width int) string {
	switch {
	case width <= 0:
		return ""
	case lipgloss.Width(s) <= width:
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) >= width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
