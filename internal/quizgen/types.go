package quizgen

// Question is a single multiple-choice quiz question ready for display.
type Question struct {
	// Text is the question prompt shown to the child.
	Text string

	// Options contains exactly 4 answer choices. Each option starts
	// with an emoji so pre-readers can navigate by picture.
	Options []string

	// CorrectIndex is the zero-based index of the correct option.
	CorrectIndex int
}

// Difficulty labels how hard the generated questions should be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForLevel maps the learner's quiz level to a difficulty tier.
// Levels 1-2 are easy, 3-5 medium, 6 and up hard.
func DifficultyForLevel(level int) Difficulty {
	switch {
	case level < 3:
		return DifficultyEasy
	case level < 6:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// GenerateInput holds all context needed to generate a quiz round.
type GenerateInput struct {
	// Topic is the quiz subject, e.g. "Animals", "Space", or the name
	// of an object the child scanned.
	Topic string

	// Level is the learner's current quiz level, used to pick difficulty.
	Level int

	// Count is the number of questions to generate. Themed rounds ask
	// for 3, a quiz about a single scanned object asks for 1.
	Count int
}
