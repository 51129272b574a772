package quiz

var letters = [...]string{"A", "B", "C", "D"}

// LetterIndex maps an option letter to its position in Options.
func LetterIndex(letter string) (int, bool) {
	for i, l := range letters {
		if l == letter {
			return i, true
		}
	}
	return -1, false
}

// IndexLetter maps an option position to its letter, or "" if out of range.
func IndexLetter(i int) string {
	if i < 0 || i >= len(letters) {
		return ""
	}
	return letters[i]
}

// Letters returns a fresh copy of the option labels in order.
func Letters() []string {
	return append([]string(nil), letters[:]...)
}

// Result is a scored submission.
type Result struct {
	Score     int
	Questions []Question
}

// Score compares answers against questions position by position. Missing
// answers count as unanswered and extra answers are ignored. The returned
// questions are copies with UserAnswer set; the input is left untouched.
func Score(answers []string, questions []Question) Result {
	out := make([]Question, len(questions))
	score := 0
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		if answer == q.CorrectAnswer {
			score++
		}
		q.Options = append([]string(nil), q.Options...)
		q.UserAnswer = &answer
		out[i] = q
	}
	return Result{Score: score, Questions: out}
}

// DisplayAnswer returns the option text for letter, or NoAnswer when the
// letter is absent or does not name one of q's options.
func DisplayAnswer(q Question, letter *string) string {
	if letter == nil {
		return NoAnswer
	}
	i, ok := LetterIndex(*letter)
	if !ok || i >= len(q.Options) {
		return NoAnswer
	}
	return q.Options[i]
}

// Verdict returns the encouragement line shown with a score.
func Verdict(score, total int) string {
	switch {
	case score == total:
		return "Perfect score! Excellent job!"
	case score*5 >= total*4:
		return "Great job! You're doing very well!"
	case score*5 >= total*3:
		return "Good effort! Keep studying to improve!"
	default:
		return "You can do better! Don't give up and keep learning!"
	}
}
