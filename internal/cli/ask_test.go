package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/session"
)

type stubGenerator struct {
	err error
	got quiz.Request
}

func (g *stubGenerator) Generate(_ context.Context, req quiz.Request) ([]quiz.Question, error) {
	g.got = req
	if g.err != nil {
		return nil, g.err
	}
	qs := make([]quiz.Question, quiz.BatchSize)
	for i := range qs {
		qs[i] = quiz.Question{
			Text:          fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"opt A", "opt B", "opt C", "opt D"},
			CorrectAnswer: "C",
			Advice:        "Practice daily.",
		}
	}
	return qs, nil
}

func request() session.GenerateInput {
	return session.GenerateInput{Subject: "Chemistry", Proficiency: quiz.Advanced, Credential: "sk-test"}
}

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestAskFullRun(t *testing.T) {
	// "x" is rejected and question 1 is asked again; question 4 is skipped.
	input := "x\nc\nC\na\n\nc\nc\nc\nc\nc\nb\n"
	var out bytes.Buffer
	sess := session.New()

	err := NewAskCLI(strings.NewReader(input), &out).Run(context.Background(), sess, &stubGenerator{}, request())
	require.NoError(t, err)

	st, ok := sess.State().(session.ResultsState)
	require.True(t, ok)
	assert.Equal(t, 7, st.Score)

	text := out.String()
	assert.Contains(t, text, "Please answer with one of A, B, C, D.")
	assert.Contains(t, text, "Your Score: 7 / 10")
	assert.Contains(t, text, quiz.Verdict(7, 10))
	assert.Contains(t, text, "✗ 3. Question 3?")
	assert.Contains(t, text, quiz.NoAnswer)
	assert.Equal(t, 3, strings.Count(text, "Correct answer:"))
}

func TestAskPromptsForCredential(t *testing.T) {
	gen := &stubGenerator{}
	in := request()
	in.Credential = ""
	lines := "sk-typed\n" + strings.Repeat("c\n", quiz.BatchSize)

	var out bytes.Buffer
	err := NewAskCLI(strings.NewReader(lines), &out).Run(context.Background(), session.New(), gen, in)
	require.NoError(t, err)
	assert.Equal(t, "sk-typed", gen.got.Credential)
	assert.Contains(t, out.String(), "Your Score: 10 / 10")
}

func TestAskLastLineWithoutNewline(t *testing.T) {
	lines := strings.Repeat("c\n", quiz.BatchSize-1) + "c"
	var out bytes.Buffer
	err := NewAskCLI(strings.NewReader(lines), &out).Run(context.Background(), session.New(), &stubGenerator{}, request())
	require.NoError(t, err)
}

func TestAskInputClosedEarly(t *testing.T) {
	var out bytes.Buffer
	err := NewAskCLI(strings.NewReader("a\nb\n"), &out).Run(context.Background(), session.New(), &stubGenerator{}, request())
	assert.ErrorIs(t, err, errInputClosed)
}

func TestAskGenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: &quiz.FormatError{Err: errors.New("bad")}}
	var out bytes.Buffer
	err := NewAskCLI(strings.NewReader(""), &out).Run(context.Background(), session.New(), gen, request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to parse the response")
}

func TestAskInvalidInput(t *testing.T) {
	in := request()
	in.Subject = ""
	var out bytes.Buffer
	err := NewAskCLI(strings.NewReader(""), &out).Run(context.Background(), session.New(), &stubGenerator{}, in)

	var inputErr *session.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, []string{"subject"}, inputErr.Fields)
}
