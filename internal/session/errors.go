package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
)

var (
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("questions are already being generated")

	// ErrWrongStep is returned when an operation does not apply to the
	// current step.
	ErrWrongStep = errors.New("not allowed at this step")
)

// InputError lists the generation inputs that are missing or invalid.
type InputError struct {
	Fields []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("please provide a valid %s", strings.Join(e.Fields, ", "))
}

const (
	formatMessage = "Failed to parse the response from the API. The response might not be in the correct JSON format."
	shapeMessage  = "Invalid response format from API. The questions do not match the expected structure."
)

// ErrorMessage converts a generation failure into the text shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var fe *quiz.FormatError
	if errors.As(err, &fe) {
		return formatMessage
	}
	var se *quiz.ShapeError
	if errors.As(err, &se) {
		return shapeMessage
	}
	var te *quiz.TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
