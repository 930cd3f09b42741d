package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/masumhasan/eduplay/internal/llm"
)

func validRound() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{"question": "Which planet is called the Red Planet?", "options": ["🔴 Mars", "🔵 Earth", "🟡 Venus", "⚪ Moon"], "correctAnswer": 0},
			{"question": "How many legs does a spider have?", "options": ["🕷️ Eight", "🐜 Six", "🐙 Ten", "🐛 Four"], "correctAnswer": 0},
			{"question": "What do bees make?", "options": ["🥛 Milk", "🍯 Honey", "🧀 Cheese", "🍞 Bread"], "correctAnswer": 1}
		]
	}`)
}

func TestGenerate_ThemedRound(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validRound()},
	)
	g := New(mock, DefaultConfig())

	questions, err := g.Generate(context.Background(), GenerateInput{Topic: "Space", Level: 1, Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	if questions[2].CorrectIndex != 1 {
		t.Fatalf("expected correct index 1, got %d", questions[2].CorrectIndex)
	}
}

func TestGenerate_PromptCarriesTopicAndDifficulty(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validRound()},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), GenerateInput{Topic: "Dinosaurs", Level: 4, Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Dinosaurs") {
		t.Errorf("prompt missing topic: %s", prompt)
	}
	if !strings.Contains(prompt, "medium") {
		t.Errorf("level 4 should request medium difficulty: %s", prompt)
	}
	if mock.Calls[0].Schema != RoundSchema {
		t.Error("expected round schema on the request")
	}
}

func TestGenerate_TruncatesExtraQuestions(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validRound()},
	)
	g := New(mock, DefaultConfig())

	questions, err := g.Generate(context.Background(), GenerateInput{Topic: "Bees", Level: 1, Count: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
}

func TestGenerate_EmptyRoundFails(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"questions": []}`)},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), GenerateInput{Topic: "Space", Level: 1, Count: 3})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), GenerateInput{Topic: "Space", Level: 1, Count: 3})
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestDifficultyForLevel(t *testing.T) {
	tests := []struct {
		level    int
		expected Difficulty
	}{
		{1, DifficultyEasy},
		{2, DifficultyEasy},
		{3, DifficultyMedium},
		{5, DifficultyMedium},
		{6, DifficultyHard},
		{12, DifficultyHard},
	}
	for _, tt := range tests {
		if got := DifficultyForLevel(tt.level); got != tt.expected {
			t.Errorf("DifficultyForLevel(%d) = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestFallbackQuestions(t *testing.T) {
	questions := FallbackQuestions()
	if len(questions) != 1 {
		t.Fatalf("expected 1 fallback question, got %d", len(questions))
	}
	q := questions[0]
	if q.Options[q.CorrectIndex] != "🐮 Cow" {
		t.Fatalf("expected cow to be correct, got %q", q.Options[q.CorrectIndex])
	}
	if verr := (&StructuralValidator{}).Validate(&q, GenerateInput{}); verr != nil {
		t.Fatalf("fallback question failed validation: %v", verr)
	}
}
