package quiz

import (
	"context"

	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quizgen"
)

// ThemedRoundSize is the question count for a themed quiz round.
const ThemedRoundSize = 3

// Engine drives quiz rounds and applies their outcomes to the
// learner's progress record.
type Engine struct {
	gen      quizgen.Generator
	progress *progress.Store
}

// NewEngine creates an Engine over the given generator and progress store.
func NewEngine(gen quizgen.Generator, prog *progress.Store) *Engine {
	return &Engine{gen: gen, progress: prog}
}

// NewThemedRound generates a 3-question round about the given topic at
// the learner's current level. If generation fails the round falls back
// to the canned question so the quiz always starts.
func (e *Engine) NewThemedRound(ctx context.Context, topic string) (*Round, error) {
	return e.newRound(ctx, topic, ThemedRoundSize)
}

// NewObjectRound generates a single question about a scanned object.
func (e *Engine) NewObjectRound(ctx context.Context, object string) (*Round, error) {
	return e.newRound(ctx, object, 1)
}

func (e *Engine) newRound(ctx context.Context, topic string, count int) (*Round, error) {
	input := quizgen.GenerateInput{
		Topic: topic,
		Level: e.progress.Current().QuizLevel,
		Count: count,
	}

	questions, err := e.gen.Generate(ctx, input)
	if err != nil {
		return NewRound(topic, quizgen.FallbackQuestions()), nil
	}
	return NewRound(topic, questions), nil
}

// SubmitAnswer records the choice on the round and, when correct,
// awards a star immediately. The star lands at answer time so the kid
// sees the counter tick before the round is over.
func (e *Engine) SubmitAnswer(ctx context.Context, r *Round, choice int) (bool, error) {
	correct, err := r.Answer(choice)
	if err != nil {
		// A re-answer keeps its recorded verdict alongside
		// ErrAlreadyAnswered; no score change either way.
		return correct, err
	}
	if correct {
		cur := e.progress.Current()
		if _, err := e.progress.Update(ctx, progress.Delta{Stars: progress.Int(cur.Stars + 1)}); err != nil {
			return correct, err
		}
	}
	return correct, nil
}

// CompleteRound applies the finished round to the progress record:
// the completion counter always increments, the quiz level only on a
// perfect score. Returns the new snapshot and whether a level-up happened.
func (e *Engine) CompleteRound(ctx context.Context, r *Round) (progress.Progress, bool, error) {
	cur := e.progress.Current()

	delta := progress.Delta{
		QuizzesCompleted: progress.Int(cur.QuizzesCompleted + 1),
	}
	leveledUp := r.Perfect()
	if leveledUp {
		delta.QuizLevel = progress.Int(cur.QuizLevel + 1)
	}

	snap, err := e.progress.Update(ctx, delta)
	return snap, leveledUp, err
}
