package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

func sampleQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			Text:          fmt.Sprintf("Q%d", i+1),
			Options:       []string{"w", "x", "y", "z"},
			CorrectAnswer: "A",
			Advice:        "remember A",
		}
	}
	return qs
}

func validInput() GenerateInput {
	return GenerateInput{Subject: "History", Proficiency: quiz.Beginner, Credential: "sk-test"}
}

type stubGenerator struct {
	questions []quiz.Question
	err       error
	got       quiz.Request
}

func (g *stubGenerator) Generate(_ context.Context, req quiz.Request) ([]quiz.Question, error) {
	g.got = req
	return g.questions, g.err
}

func TestNew_StartsOnInput(t *testing.T) {
	s := New()
	assert.Equal(t, StepInput, s.Step())
	assert.Equal(t, InputState{}, s.State())
	assert.NotEmpty(t, s.ID())
}

func TestGenerate_Success(t *testing.T) {
	s := New()
	gen := &stubGenerator{questions: sampleQuestions(quiz.BatchSize)}

	require.NoError(t, s.Generate(context.Background(), gen, validInput()))
	assert.Equal(t, "sk-test", gen.got.Credential)
	assert.Equal(t, quiz.Beginner, gen.got.Proficiency)

	st, ok := s.State().(QuizState)
	require.True(t, ok, "expected quiz state, got %T", s.State())
	assert.Len(t, st.Questions, quiz.BatchSize)
	assert.Len(t, st.Answers, quiz.BatchSize)
	assert.Equal(t, quiz.BatchSize, st.Unanswered())
}

func TestGenerate_FailureKeepsInputs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", &quiz.TransportError{Err: errors.New("Incorrect API key provided")}, "Incorrect API key provided"},
		{"format", &quiz.FormatError{Err: errors.New("bad")}, formatMessage},
		{"shape", &quiz.ShapeError{Index: -1, Reason: "response is not an array"}, shapeMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Generate(context.Background(), &stubGenerator{err: tt.err}, validInput())
			require.Error(t, err)

			st, ok := s.State().(InputState)
			require.True(t, ok)
			assert.Equal(t, tt.want, st.Err)
			assert.Equal(t, "History", st.Subject)
			assert.Equal(t, quiz.Beginner, st.Proficiency)
			assert.False(t, st.Loading)
		})
	}
}

func TestBeginGenerate_ValidatesInput(t *testing.T) {
	s := New()

	err := s.BeginGenerate(GenerateInput{Proficiency: "Expert"})
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.ElementsMatch(t, []string{"subject", "proficiency", "credential"}, ie.Fields)

	st := s.State().(InputState)
	assert.False(t, st.Loading, "invalid input must not start loading")
}

func TestBeginGenerate_Busy(t *testing.T) {
	s := New()
	require.NoError(t, s.BeginGenerate(validInput()))

	st := s.State().(InputState)
	assert.True(t, st.Loading)
	assert.Empty(t, st.Err)

	assert.ErrorIs(t, s.BeginGenerate(validInput()), ErrBusy)

	require.NoError(t, s.FinishGenerate(sampleQuestions(2), nil))
	assert.Equal(t, StepQuiz, s.Step())
}

func TestBeginGenerate_ClearsPreviousError(t *testing.T) {
	s := New()
	_ = s.Generate(context.Background(), &stubGenerator{err: &quiz.TransportError{Err: errors.New("down")}}, validInput())
	require.Equal(t, "down", s.State().(InputState).Err)

	require.NoError(t, s.BeginGenerate(validInput()))
	assert.Empty(t, s.State().(InputState).Err)
}

func TestFinishGenerate_WithoutBegin(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.FinishGenerate(sampleQuestions(1), nil), ErrWrongStep)
}

func TestGenerate_ConcurrentRequestIsRejected(t *testing.T) {
	release := make(chan struct{})
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: mustJSON(t, sampleQuestions(quiz.BatchSize)),
		Wait:    release,
	})
	gen := quiz.New(llm.StaticFactory(mock), quiz.DefaultConfig())
	s := New()

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = s.Generate(context.Background(), gen, validInput())
	}()

	require.Eventually(t, func() bool { return mock.CallCount() == 1 }, timeout, tick)
	assert.ErrorIs(t, s.Generate(context.Background(), gen, validInput()), ErrBusy)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, StepQuiz, s.Step())
	assert.Equal(t, 1, mock.CallCount())
}

func TestRestart_DiscardsInFlightResult(t *testing.T) {
	s := New()
	require.NoError(t, s.BeginGenerate(validInput()))
	s.Restart()

	assert.ErrorIs(t, s.FinishGenerate(sampleQuestions(3), nil), ErrWrongStep)
	assert.Equal(t, InputState{}, s.State())
}

func TestAnswerAndSubmit(t *testing.T) {
	s := New()
	require.NoError(t, s.Generate(context.Background(), &stubGenerator{questions: sampleQuestions(4)}, validInput()))

	require.NoError(t, s.Answer(0, "A"))
	require.NoError(t, s.Answer(1, "B"))
	require.NoError(t, s.Answer(2, "A"))
	require.NoError(t, s.Answer(2, ""))

	assert.Error(t, s.Answer(4, "A"))
	assert.Error(t, s.Answer(-1, "A"))
	assert.Error(t, s.Answer(0, "E"))

	st := s.State().(QuizState)
	assert.Equal(t, []string{"A", "B", "", ""}, st.Answers)

	res, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)

	rs, ok := s.State().(ResultsState)
	require.True(t, ok)
	assert.Equal(t, 1, rs.Score)
	require.Len(t, rs.Questions, 4)
	require.NotNil(t, rs.Questions[3].UserAnswer)
	assert.Equal(t, "", *rs.Questions[3].UserAnswer)
}

func TestWrongStepOperations(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Answer(0, "A"), ErrWrongStep)
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, s.Generate(context.Background(), &stubGenerator{questions: sampleQuestions(1)}, validInput()))
	assert.ErrorIs(t, s.BeginGenerate(validInput()), ErrWrongStep)

	_, err = s.Submit()
	require.NoError(t, err)
	assert.ErrorIs(t, s.Answer(0, "A"), ErrWrongStep)
}

func TestRestart_FromResults(t *testing.T) {
	s := New()
	require.NoError(t, s.Generate(context.Background(), &stubGenerator{questions: sampleQuestions(2)}, validInput()))
	_, err := s.Submit()
	require.NoError(t, err)

	s.Restart()
	assert.Equal(t, InputState{}, s.State())
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	s := New()
	require.NoError(t, s.Generate(context.Background(), &stubGenerator{questions: sampleQuestions(2)}, validInput()))

	snap := s.State().(QuizState)
	snap.Answers[0] = "D"
	assert.Equal(t, "", s.State().(QuizState).Answers[0])
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "plain", ErrorMessage(errors.New("plain")))
	wrapped := fmt.Errorf("generate: %w", &quiz.FormatError{Err: errors.New("x")})
	assert.Equal(t, formatMessage, ErrorMessage(wrapped))
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "input", StepInput.String())
	assert.Equal(t, "quiz", StepQuiz.String())
	assert.Equal(t, "results", StepResults.String())
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
