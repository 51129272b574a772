package quiz

import (
	"encoding/json"

	"github.com/abhisek/quizgen/internal/llm"
)

// ParseQuestions validates raw model output and converts it to questions.
// The whole batch is rejected if any element is malformed.
func ParseQuestions(raw string) ([]Question, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &FormatError{Err: err}
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, &ShapeError{Index: -1, Reason: "response is not an array"}
	}
	if len(items) == 0 {
		return nil, &ShapeError{Index: -1, Reason: "response contains no questions"}
	}

	questions := make([]Question, len(items))
	for i, item := range items {
		if err := llm.CheckSchema(QuestionSchema, item); err != nil {
			return nil, &ShapeError{Index: i, Reason: "does not match the expected structure", Err: err}
		}
		questions[i] = questionFrom(item.(map[string]any))
	}
	return questions, nil
}

// questionFrom reads a schema-checked object by its exact keys. Case
// variants such as "Options" and any model-supplied userAnswer are ignored.
func questionFrom(m map[string]any) Question {
	raw := m["options"].([]any)
	options := make([]string, len(raw))
	for i, o := range raw {
		options[i] = o.(string)
	}
	return Question{
		Text:          m["text"].(string),
		Options:       options,
		CorrectAnswer: m["correctAnswer"].(string),
		Advice:        m["advice"].(string),
	}
}
