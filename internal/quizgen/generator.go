package quizgen

import "context"

// Generator produces quiz questions using an LLM provider.
type Generator interface {
	// Generate produces a validated quiz round for the given input.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) ([]Question, error)
}
