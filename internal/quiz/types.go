package quiz

import (
	"fmt"
	"strings"
)

// BatchSize is the number of questions requested per quiz.
const BatchSize = 10

// NoAnswer is shown in place of an answer the user left blank.
const NoAnswer = "No answer provided"

// Question is a single multiple-choice question as returned by the model.
type Question struct {
	// Text is the question prompt.
	Text string `json:"text"`

	// Options holds exactly four answer options, labelled A to D in order.
	Options []string `json:"options"`

	// CorrectAnswer is the letter of the correct option ("A".."D").
	CorrectAnswer string `json:"correctAnswer"`

	// Advice explains how to remember and understand the concept.
	Advice string `json:"advice"`

	// UserAnswer is nil until the quiz is submitted. After submission it
	// holds the chosen letter, or "" if the question was skipped.
	UserAnswer *string `json:"userAnswer,omitempty"`
}

// IsCorrect reports whether the submitted answer matches the correct one.
// An unsubmitted question is never correct.
func (q Question) IsCorrect() bool {
	return q.UserAnswer != nil && *q.UserAnswer == q.CorrectAnswer
}

// Proficiency is the difficulty level requested from the model.
type Proficiency string

const (
	Elementary        Proficiency = "Elementary"
	Beginner          Proficiency = "Beginner"
	Intermediate      Proficiency = "Intermediate"
	UpperIntermediate Proficiency = "Upper Intermediate"
	Advanced          Proficiency = "Advanced"
	Proficient        Proficiency = "Proficient"
	Doctoral          Proficiency = "Doctoral"
)

var proficiencies = []Proficiency{
	Elementary,
	Beginner,
	Intermediate,
	UpperIntermediate,
	Advanced,
	Proficient,
	Doctoral,
}

// Proficiencies returns the supported levels from easiest to hardest.
func Proficiencies() []Proficiency {
	out := make([]Proficiency, len(proficiencies))
	copy(out, proficiencies)
	return out
}

// ParseProficiency matches s against the level labels, ignoring case and
// surrounding whitespace.
func ParseProficiency(s string) (Proficiency, error) {
	s = strings.TrimSpace(s)
	for _, p := range proficiencies {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown proficiency level %q", s)
}

// Valid reports whether p is one of the supported levels.
func (p Proficiency) Valid() bool {
	for _, known := range proficiencies {
		if p == known {
			return true
		}
	}
	return false
}

func (p Proficiency) String() string { return string(p) }
