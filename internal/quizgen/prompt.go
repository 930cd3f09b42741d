package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a playful teacher creating quiz questions for children aged 4 to 8.

Rules:
- Generate fun, educational multiple-choice questions about the given topic.
- Keep every question short and simple enough to be read aloud to a pre-reader.
- Provide exactly 4 options per question, each starting with a relevant emoji.
- Exactly one option is correct. Wrong options should be plausible for a child, never silly filler.
- Match the requested difficulty: "easy" questions are recognizable facts, "medium" needs a little thought, "hard" rewards a curious kid who pays attention.
- Never include scary, violent, or sad content.
- Vary the position of the correct answer across questions.`

// buildUserMessage constructs the user message for a quiz round.
func buildUserMessage(input GenerateInput) string {
	difficulty := DifficultyForLevel(input.Level)

	var b strings.Builder
	if input.Count == 1 {
		fmt.Fprintf(&b, "Create 1 quiz question about: %s\n", input.Topic)
	} else {
		fmt.Fprintf(&b, "Create %d quiz questions about: %s\n", input.Count, input.Topic)
	}
	fmt.Fprintf(&b, "Difficulty: %s (the child is on quiz level %d)\n", difficulty, input.Level)
	return b.String()
}
