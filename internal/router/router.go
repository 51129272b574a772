// Package router keeps the TUI's screen stack. The bottom screen follows
// the quiz step; overlays such as help are pushed on top of it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/screen"
)

// PushScreenMsg opens Screen as an overlay.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top overlay.
type PopScreenMsg struct{}

type Router struct {
	stack []screen.Screen
}

func New(base screen.Screen) *Router {
	return &Router{stack: []screen.Screen{base}}
}

// Push opens s on top of the stack and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The base screen is never popped.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Reset drops every screen, overlays included, and makes s the base.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.stack = []screen.Screen{s}
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles the navigation messages. Keyboard and mouse input goes
// to the active screen only. Anything else, such as the result of a
// background command, reaches the base screen even while an overlay is
// open, and the overlay too.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}

	top := len(r.stack) - 1
	if isInput(msg) || top == 0 {
		return r.updateAt(top, msg)
	}
	return tea.Batch(r.updateAt(0, msg), r.updateAt(top, msg))
}

func (r *Router) updateAt(i int, msg tea.Msg) tea.Cmd {
	next, cmd := r.stack[i].Update(msg)
	r.stack[i] = next
	return cmd
}

func isInput(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg, tea.PasteMsg:
		return true
	}
	return false
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
