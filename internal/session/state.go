package session

import "github.com/abhisek/quizgen/internal/quiz"

// Step identifies which of the three screens a session is on.
type Step int

const (
	StepInput Step = iota
	StepQuiz
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepQuiz:
		return "quiz"
	case StepResults:
		return "results"
	}
	return "unknown"
}

// State is one of InputState, QuizState or ResultsState.
type State interface {
	Step() Step
	sealed()
}

// InputState collects the subject and level. Err holds the message of the
// last failed generation; Loading is set while a request is in flight.
type InputState struct {
	Subject     string
	Proficiency quiz.Proficiency
	Err         string
	Loading     bool
}

// QuizState holds a generated batch and one answer slot per question.
// An empty answer means the question is unanswered.
type QuizState struct {
	Questions []quiz.Question
	Answers   []string
}

// ResultsState holds the scored batch.
type ResultsState struct {
	Score     int
	Questions []quiz.Question
}

func (InputState) Step() Step   { return StepInput }
func (QuizState) Step() Step    { return StepQuiz }
func (ResultsState) Step() Step { return StepResults }

func (InputState) sealed()   {}
func (QuizState) sealed()    {}
func (ResultsState) sealed() {}

// Unanswered returns the number of questions without an answer.
func (q QuizState) Unanswered() int {
	n := 0
	for _, a := range q.Answers {
		if a == "" {
			n++
		}
	}
	return n
}

func (q QuizState) clone() QuizState {
	return QuizState{
		Questions: append([]quiz.Question(nil), q.Questions...),
		Answers:   append([]string(nil), q.Answers...),
	}
}

func (r ResultsState) clone() ResultsState {
	return ResultsState{
		Score:     r.Score,
		Questions: append([]quiz.Question(nil), r.Questions...),
	}
}
