package quiz

import (
	"encoding/json"
	"fmt"
)

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Text:          fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"alpha", "beta", "gamma", "delta"},
			CorrectAnswer: IndexLetter(i % 4),
			Advice:        fmt.Sprintf("Advice %d", i+1),
		}
	}
	return qs
}

func sampleBatchJSON(n int) string {
	b, err := json.Marshal(sampleQuestions(n))
	if err != nil {
		panic(err)
	}
	return string(b)
}
