package quizgen

import "fmt"

// StructuralValidator checks that a question has displayable text,
// 2 to 4 distinct options, and a correct index in range.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
			Retryable: true,
		}
	}
	if len(q.Text) > 300 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text exceeds 300 characters",
			Retryable: true,
		}
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected 2-4 options, got %d", len(q.Options)),
			Retryable: true,
		}
	}
	seen := make(map[string]bool, 4)
	for i, opt := range q.Options {
		if opt == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is empty", i),
				Retryable: true,
			}
		}
		if seen[opt] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %q", opt),
				Retryable: true,
			}
		}
		seen[opt] = true
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correctAnswer %d out of range", q.CorrectIndex),
			Retryable: true,
		}
	}
	return nil
}
