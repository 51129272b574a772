package quiz

import "fmt"

const promptTemplate = `Generate %d multiple-choice questions about %s at a %s level. For each question, provide 4 options (A, B, C, D), the correct answer, and advice on how to remember and understand the concept. Format the response as a JSON array of objects with the following structure:

[
  {
    "text": "Question text here",
    "options": [
      "Option A",
      "Option B",
      "Option C",
      "Option D"
    ],
    "correctAnswer": "A",
    "advice": "Advice on how to remember and understand the concept"
  },
  ...
]

Ensure that the JSON is valid and can be parsed directly. Do not include any additional text or formatting outside of the JSON structure.`

// BuildPrompt returns the instruction text sent to the model. Subject and
// level are interpolated verbatim.
func BuildPrompt(subject string, level Proficiency) string {
	return fmt.Sprintf(promptTemplate, BatchSize, subject, level)
}
