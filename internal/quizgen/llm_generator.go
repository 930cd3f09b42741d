package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/masumhasan/eduplay/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// roundOutput is the raw LLM response before validation.
type roundOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Generate produces a quiz round for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      RoundSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw roundOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if len(raw.Questions) == 0 {
		return nil, &ValidationError{
			Validator: "structural",
			Message:   "response contains no questions",
			Retryable: true,
		}
	}
	if input.Count > 0 && len(raw.Questions) > input.Count {
		raw.Questions = raw.Questions[:input.Count]
	}

	questions := make([]Question, len(raw.Questions))
	for i, rq := range raw.Questions {
		q := Question{
			Text:         rq.Question,
			Options:      rq.Options,
			CorrectIndex: rq.CorrectAnswer,
		}

		for _, v := range g.config.Validators {
			if verr := v.Validate(&q, input); verr != nil {
				return nil, verr
			}
		}
		questions[i] = q
	}

	return questions, nil
}
