package quizgen

import "testing"

func validQuestion() Question {
	return Question{
		Text:         "What color is the sky on a clear day?",
		Options:      []string{"🔵 Blue", "🟢 Green", "🔴 Red", "🟣 Purple"},
		CorrectIndex: 0,
	}
}

func TestStructural_ValidQuestionPasses(t *testing.T) {
	q := validQuestion()
	if verr := (&StructuralValidator{}).Validate(&q, GenerateInput{}); verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Question)
	}{
		{"empty text", func(q *Question) { q.Text = "" }},
		{"one option", func(q *Question) { q.Options = q.Options[:1] }},
		{"five options", func(q *Question) { q.Options = append(q.Options, "🟠 Orange") }},
		{"empty option", func(q *Question) { q.Options[2] = "" }},
		{"duplicate option", func(q *Question) { q.Options[3] = q.Options[0] }},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }},
		{"index out of range", func(q *Question) { q.CorrectIndex = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)

			verr := (&StructuralValidator{}).Validate(&q, GenerateInput{})
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if !verr.Retryable {
				t.Error("structural failures should be retryable")
			}
		})
	}
}
