package quiz

import "github.com/abhisek/quizgen/internal/llm"

// QuestionSchema is the structure every element of a response must match.
// Unknown properties are tolerated.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A multiple-choice question with four options, the correct letter and study advice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type": "string",
			},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswer": map[string]any{
				"type": "string",
				"enum": letterEnum(),
			},
			"advice": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"text", "options", "correctAnswer", "advice"},
	},
}

func letterEnum() []any {
	out := make([]any, len(letters))
	for i, l := range letters {
		out[i] = l
	}
	return out
}
