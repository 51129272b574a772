package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/session"
)

// errInputClosed is returned when stdin ends before the quiz is finished.
var errInputClosed = errors.New("input closed")

// AskCLI runs a quiz in plain line mode: questions are printed one by one
// and answers are read as letters from the input.
type AskCLI struct {
	in    *bufio.Reader
	out   io.Writer
	bold  *color.Color
	dim   *color.Color
	green *color.Color
	red   *color.Color
}

// NewAskCLI creates a line-mode runner reading from r and writing to w.
func NewAskCLI(r io.Reader, w io.Writer) *AskCLI {
	return &AskCLI{
		in:    bufio.NewReader(r),
		out:   w,
		bold:  color.New(color.Bold),
		dim:   color.New(color.Faint),
		green: color.New(color.FgGreen, color.Bold),
		red:   color.New(color.FgRed, color.Bold),
	}
}

// Run generates a quiz for in, collects answers and prints the results.
// A blank credential is asked for interactively.
func (c *AskCLI) Run(ctx context.Context, sess *session.Session, gen session.Generator, in session.GenerateInput) error {
	if strings.TrimSpace(in.Credential) == "" {
		key, err := c.prompt("API key: ")
		if err != nil {
			return err
		}
		in.Credential = key
	}

	c.bold.Fprintf(c.out, "Generating %d %s questions on %q...\n\n", quiz.BatchSize, in.Proficiency, in.Subject)
	if err := sess.Generate(ctx, gen, in); err != nil {
		var inputErr *session.InputError
		if errors.As(err, &inputErr) {
			return err
		}
		return errors.New(session.ErrorMessage(err))
	}

	st, ok := sess.State().(session.QuizState)
	if !ok {
		return fmt.Errorf("unexpected step %s", sess.Step())
	}

	for i, q := range st.Questions {
		if err := c.ask(sess, i, len(st.Questions), q); err != nil {
			return err
		}
	}

	res, err := sess.Submit()
	if err != nil {
		return err
	}
	c.printResult(res)
	return nil
}

func (c *AskCLI) ask(sess *session.Session, i, total int, q quiz.Question) error {
	c.bold.Fprintf(c.out, "── Question %d/%d ──\n", i+1, total)
	fmt.Fprintln(c.out, q.Text)
	for j, opt := range q.Options {
		fmt.Fprintf(c.out, "  %s) %s\n", quiz.IndexLetter(j), opt)
	}

	for {
		answer, err := c.prompt("\nYour answer (A-D, blank to skip): ")
		if err != nil {
			return err
		}
		answer = strings.ToUpper(answer)
		if err := sess.Answer(i, answer); err != nil {
			c.red.Fprintf(c.out, "Please answer with one of %s.\n", strings.Join(quiz.Letters(), ", "))
			continue
		}
		fmt.Fprintln(c.out)
		return nil
	}
}

func (c *AskCLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
		// Last line without a trailing newline.
	case errors.Is(err, io.EOF):
		return "", errInputClosed
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *AskCLI) printResult(res quiz.Result) {
	total := len(res.Questions)
	c.bold.Fprintf(c.out, "Your Score: %d / %d\n", res.Score, total)
	fmt.Fprintln(c.out, quiz.Verdict(res.Score, total))
	fmt.Fprintln(c.out)

	for i, q := range res.Questions {
		if q.IsCorrect() {
			c.green.Fprintf(c.out, "✓ %d. %s\n", i+1, q.Text)
		} else {
			c.red.Fprintf(c.out, "✗ %d. %s\n", i+1, q.Text)
		}
		c.dim.Fprint(c.out, "   Your answer: ")
		fmt.Fprintln(c.out, quiz.DisplayAnswer(q, q.UserAnswer))
		if !q.IsCorrect() {
			correct := q.CorrectAnswer
			c.dim.Fprint(c.out, "   Correct answer: ")
			fmt.Fprintln(c.out, quiz.DisplayAnswer(q, &correct))
		}
		c.dim.Fprint(c.out, "   Advice: ")
		fmt.Fprintln(c.out, q.Advice)
		fmt.Fprintln(c.out)
	}
}
