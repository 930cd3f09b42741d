package quizgen

import "github.com/masumhasan/eduplay/internal/llm"

// RoundSchema defines the JSON schema for LLM quiz generation responses.
var RoundSchema = &llm.Schema{
	Name:        "quiz-round",
	Description: "A set of multiple-choice quiz questions for a young child",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, short and readable aloud to a 4-8 year old",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options, each prefixed with a relevant emoji",
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
					},
					"required":             []any{"question", "options", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
