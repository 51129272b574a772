package input

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/session"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

const (
	generateLabel   = "Generate Questions"
	generatingLabel = "Generating Questions..."
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type field int

const (
	fieldSubject field = iota
	fieldLevel
	fieldCredential
	fieldSubmit
	fieldCount
)

// generatedMsg carries the outcome of a background generation.
type generatedMsg struct {
	questions []quiz.Question
	err       error
}

// levelChosenMsg is emitted by the proficiency menu.
type levelChosenMsg struct {
	level quiz.Proficiency
}

type spinnerTickMsg time.Time

var _ screen.Screen = (*InputScreen)(nil)

// InputScreen collects the subject, proficiency level and API key and starts
// question generation.
type InputScreen struct {
	ctx  context.Context
	sess *session.Session
	gen  session.Generator

	subject    components.TextInput
	levels     components.Menu
	credential components.TextInput
	submit     components.Button

	focus   field
	loading bool
	frame   int
	errMsg  string
}

// New creates the input screen. credential prefills the API key field.
func New(ctx context.Context, sess *session.Session, gen session.Generator, credential string) *InputScreen {
	s := &InputScreen{
		ctx:        ctx,
		sess:       sess,
		gen:        gen,
		subject:    components.NewTextInput("e.g. World History", false, 48),
		credential: components.NewTextInput("sk-...", true, 48),
	}

	items := make([]components.MenuItem, 0, len(quiz.Proficiencies()))
	for _, p := range quiz.Proficiencies() {
		items = append(items, components.MenuItem{
			Label: p.String(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return levelChosenMsg{level: p} }
			},
		})
	}
	s.levels = components.NewMenu(items)
	s.submit = components.NewButton(generateLabel, false, s.start)
	s.credential.SetValue(credential)

	if st, ok := sess.State().(session.InputState); ok {
		s.subject.SetValue(st.Subject)
		if st.Proficiency != "" {
			s.levels.Choose(st.Proficiency.String())
		}
		s.errMsg = st.Err
	}
	s.refresh()
	return s
}

func (s *InputScreen) Init() tea.Cmd {
	return tea.Batch(s.setFocus(fieldSubject), s.subject.Init())
}

func (s *InputScreen) Title() string {
	return "New Quiz"
}

// CapturingText reports whether a text field has focus.
func (s *InputScreen) CapturingText() bool {
	return !s.loading && (s.focus == fieldSubject || s.focus == fieldCredential)
}

func (s *InputScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *InputScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s, s.handleGenerated(msg)

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case levelChosenMsg:
		s.refresh()
		return s, s.setFocus(fieldCredential)

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	// Cursor blink and other internal messages.
	var cmd tea.Cmd
	switch s.focus {
	case fieldSubject:
		s.subject, cmd = s.subject.Update(msg)
	case fieldCredential:
		s.credential, cmd = s.credential.Update(msg)
	}
	return s, cmd
}

func (s *InputScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab":
		return s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldSubject:
		if msg.String() == "enter" {
			return s.setFocus(fieldLevel)
		}
		s.subject, cmd = s.subject.Update(msg)
	case fieldLevel:
		s.levels, cmd = s.levels.Update(msg)
	case fieldCredential:
		if msg.String() == "enter" {
			return s.setFocus(fieldSubmit)
		}
		s.credential, cmd = s.credential.Update(msg)
	case fieldSubmit:
		s.submit, cmd = s.submit.Update(msg)
	}
	s.refresh()
	return cmd
}

func (s *InputScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.subject.Blur()
	s.credential.Blur()
	s.levels.Blurred = f != fieldLevel
	s.submit.Focused = f == fieldSubmit

	switch f {
	case fieldSubject:
		return s.subject.Focus()
	case fieldCredential:
		return s.credential.Focus()
	}
	return nil
}

// refresh enables the button only when every field is filled.
func (s *InputScreen) refresh() {
	s.submit.Active = !s.loading &&
		s.subject.Filled() &&
		s.levels.ChosenLabel() != "" &&
		s.credential.Filled()
	if s.loading {
		s.submit.Label = generatingLabel
	} else {
		s.submit.Label = generateLabel
	}
}

func (s *InputScreen) request() session.GenerateInput {
	return session.GenerateInput{
		Subject:     strings.TrimSpace(s.subject.Value()),
		Proficiency: quiz.Proficiency(s.levels.ChosenLabel()),
		Credential:  strings.TrimSpace(s.credential.Value()),
	}
}

// start validates the form, marks the session as loading and runs the
// generator in the background.
func (s *InputScreen) start() tea.Cmd {
	in := s.request()
	if err := s.sess.BeginGenerate(in); err != nil {
		var ie *session.InputError
		if errors.As(err, &ie) {
			s.markInvalid(ie.Fields)
		}
		s.errMsg = session.ErrorMessage(err)
		return nil
	}

	s.loading = true
	s.errMsg = ""
	s.frame = 0
	s.refresh()

	ctx, gen := s.ctx, s.gen
	generate := func() tea.Msg {
		questions, err := gen.Generate(ctx, quiz.Request{
			Subject:     in.Subject,
			Proficiency: in.Proficiency,
			Credential:  in.Credential,
		})
		return generatedMsg{questions: questions, err: err}
	}
	return tea.Batch(generate, spinnerTick())
}

func (s *InputScreen) markInvalid(fields []string) {
	for _, f := range fields {
		switch f {
		case "subject":
			s.subject.MarkMissing()
		case "credential":
			s.credential.MarkMissing()
		}
	}
}

func (s *InputScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	s.loading = false
	defer s.refresh()

	if err := s.sess.FinishGenerate(msg.questions, msg.err); err != nil {
		// Stale result.
		return nil
	}

	switch st := s.sess.State().(type) {
	case session.QuizState:
		return screen.StepChanged(session.StepQuiz)
	case session.InputState:
		s.errMsg = st.Err
	}
	return nil
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *InputScreen) View(width, height int) string {
	gap := "\n\n"
	if layout.IsCompactHeight(height) {
		gap = "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Generate a 10-question multiple-choice quiz on any subject."))
	b.WriteString(gap)

	b.WriteString(s.section(fieldSubject, "Subject", s.subject.View()))
	b.WriteString(gap)

	if s.focus == fieldLevel {
		b.WriteString(s.section(fieldLevel, "Proficiency level", strings.TrimRight(s.levels.View(), "\n")))
	} else {
		chosen := s.levels.ChosenLabel()
		if chosen == "" {
			chosen = lipgloss.NewStyle().Foreground(theme.TextDim).Render("not selected")
		}
		b.WriteString(s.section(fieldLevel, "Proficiency level", chosen))
	}
	b.WriteString(gap)

	b.WriteString(s.section(fieldCredential, "API key", s.credential.View()))
	b.WriteString(gap)

	button := "  " + s.submit.View()
	if s.loading {
		button += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame])
	}
	b.WriteString(button)

	if s.errMsg != "" {
		b.WriteString(gap)
		b.WriteString(theme.ErrorText.
			Width(width - 4).
			PaddingLeft(2).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *InputScreen) section(f field, label, body string) string {
	style := theme.Blurred
	if s.focus == f && !s.loading {
		style = theme.Focused
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(
		style.Render(theme.Label.Render(label) + "\n" + body),
	)
}
