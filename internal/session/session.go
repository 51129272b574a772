package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/quizgen/internal/quiz"
)

// Generator produces a question batch. *quiz.Generator implements it.
type Generator interface {
	Generate(ctx context.Context, req quiz.Request) ([]quiz.Question, error)
}

// Session is the state of one user's quiz. It is safe for concurrent use.
// The credential passes through to the generator and is never stored.
type Session struct {
	mu      sync.Mutex
	id      string
	state   State
	pending uint64 // identifies the in-flight generation
	logger  *slog.Logger
}

// New returns a session on the input step.
func New() *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		state:  InputState{},
		logger: slog.Default().With("component", "session", "session_id", id),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch st := s.state.(type) {
	case QuizState:
		return st.clone()
	case ResultsState:
		return st.clone()
	}
	return s.state
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Step()
}

// BeginGenerate validates in and marks the session as loading.
func (s *Session) BeginGenerate(in GenerateInput) error {
	_, err := s.begin(in)
	return err
}

func (s *Session) begin(in GenerateInput) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(InputState)
	if !ok {
		return 0, ErrWrongStep
	}
	if st.Loading {
		return 0, ErrBusy
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}

	s.pending++
	s.state = InputState{Subject: in.Subject, Proficiency: in.Proficiency, Loading: true}
	s.logger.Debug("generation started", "subject", in.Subject, "proficiency", in.Proficiency)
	return s.pending, nil
}

// FinishGenerate applies the outcome of the generation started by the last
// BeginGenerate. On failure the session stays on the input step with the
// error message set; on success it moves to the quiz step.
func (s *Session) FinishGenerate(questions []quiz.Question, err error) error {
	s.mu.Lock()
	token := s.pending
	s.mu.Unlock()
	return s.finish(token, questions, err)
}

func (s *Session) finish(token uint64, questions []quiz.Question, genErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(InputState)
	if !ok || !st.Loading || token != s.pending {
		return ErrWrongStep
	}

	if genErr != nil {
		s.logger.Warn("generation failed", "error", genErr)
		s.state = InputState{
			Subject:     st.Subject,
			Proficiency: st.Proficiency,
			Err:         ErrorMessage(genErr),
		}
		return nil
	}

	s.state = QuizState{
		Questions: questions,
		Answers:   make([]string, len(questions)),
	}
	s.logger.Debug("quiz ready", "questions", len(questions))
	return nil
}

// Generate runs a full generation: it admits the request, calls gen with
// the session's input and applies the result. The generation error, if
// any, is returned after it has been recorded on the input step.
func (s *Session) Generate(ctx context.Context, gen Generator, in GenerateInput) error {
	token, err := s.begin(in)
	if err != nil {
		return err
	}

	questions, genErr := gen.Generate(ctx, quiz.Request{
		Subject:     in.Subject,
		Proficiency: in.Proficiency,
		Credential:  in.Credential,
	})
	if err := s.finish(token, questions, genErr); err != nil {
		// The session was restarted while the request was in flight.
		s.logger.Debug("discarding stale generation result")
	}
	return genErr
}

// Answer records letter for question i. An empty letter clears the answer.
func (s *Session) Answer(i int, letter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(QuizState)
	if !ok {
		return ErrWrongStep
	}
	if i < 0 || i >= len(st.Answers) {
		return fmt.Errorf("question %d out of range", i+1)
	}
	if _, valid := quiz.LetterIndex(letter); letter != "" && !valid {
		return fmt.Errorf("invalid answer %q", letter)
	}
	st.Answers[i] = letter
	s.state = st
	return nil
}

// Submit scores the quiz and moves to the results step.
func (s *Session) Submit() (quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(QuizState)
	if !ok {
		return quiz.Result{}, ErrWrongStep
	}
	res := quiz.Score(st.Answers, st.Questions)
	s.state = ResultsState{Score: res.Score, Questions: res.Questions}
	s.logger.Info("quiz submitted", "score", res.Score, "total", len(res.Questions))
	return res, nil
}

// Restart discards everything and returns to an empty input step. A
// generation still in flight is ignored when it completes.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending++
	s.state = InputState{}
}
