// Package app hosts the root Bubble Tea model. It owns the screen stack,
// swaps the base screen whenever the session changes step, and draws the
// header and footer around whatever screen is active.
package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/screens/help"
	"github.com/abhisek/quizgen/internal/screens/input"
	"github.com/abhisek/quizgen/internal/screens/questions"
	"github.com/abhisek/quizgen/internal/screens/results"
	"github.com/abhisek/quizgen/internal/session"
	"github.com/abhisek/quizgen/internal/ui/layout"
)

type Options struct {
	Session   *session.Session
	Generator session.Generator

	Credential string // prefilled into the API key field
	Status     string // right side of the header, e.g. "openai · gpt-4"
}

type AppModel struct {
	ctx    context.Context
	opts   Options
	router *router.Router

	width, height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Session == nil {
		opts.Session = session.New()
	}
	m := AppModel{ctx: ctx, opts: opts}
	m.router = router.New(m.screenFor(opts.Session.Step()))
	return m
}

// screenFor builds the base screen shown while the session is on step.
func (m AppModel) screenFor(step session.Step) screen.Screen {
	s := m.opts.Session
	switch step {
	case session.StepQuiz:
		return questions.New(s)
	case session.StepResults:
		return results.New(s)
	default:
		return input.New(m.ctx, s, m.opts.Generator, m.opts.Credential)
	}
}

func (m AppModel) Init() tea.Cmd { return m.router.Active().Init() }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case screen.StepChangedMsg:
		slog.Debug("session step changed", "step", msg.Step)
		return m, m.router.Reset(m.screenFor(msg.Step))
	case tea.KeyMsg:
		if cmd, done := m.globalKey(msg.String()); done {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles the bindings that work on every screen. done reports
// whether the key was consumed.
func (m AppModel) globalKey(key string) (cmd tea.Cmd, done bool) {
	overlay := m.router.Depth() > 1
	switch {
	case key == "ctrl+c":
		return tea.Quit, true
	case key == "esc" && overlay:
		return msgCmd(router.PopScreenMsg{}), true
	case key == "esc":
		return nil, true
	case key == "?" && !overlay && !m.capturing():
		return msgCmd(router.PushScreenMsg{Screen: help.New()}), true
	}
	return nil, false
}

func msgCmd(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }

// capturing reports whether the active screen is taking free text, in
// which case "?" is an ordinary character.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingText()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.opts.Status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	rows := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, rows), footer, m.width, m.height)
}

var (
	baseHints    = []layout.KeyHint{{Key: "?", Description: "Help"}, {Key: "Ctrl+C", Description: "Quit"}}
	overlayHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
)

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return overlayHints
	}
	return baseHints
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx)).Run()
	return err
}
