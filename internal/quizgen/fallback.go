package quizgen

// FallbackQuestions returns the canned round used when generation fails.
// The quiz must always start with something, even offline.
func FallbackQuestions() []Question {
	return []Question{
		{
			Text:         "Which animal says 'Moo'?",
			Options:      []string{"🐶 Dog", "🐮 Cow", "🐱 Cat", "🐦 Bird"},
			CorrectIndex: 1,
		},
	}
}
