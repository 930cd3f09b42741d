package quiz

import (
	"errors"

	"github.com/masumhasan/eduplay/internal/quizgen"
)

// ErrAlreadyAnswered is returned when a question is answered twice.
// The first answer is final; a kid mashing keys must not re-score.
// The recorded outcome is still returned alongside the error.
var ErrAlreadyAnswered = errors.New("question already answered")

// ErrRoundFinished is returned for answers after the round ended.
var ErrRoundFinished = errors.New("round is finished")

const unanswered = -1

// Round tracks one quiz play-through: the questions, the answers given
// so far, and the cursor. Answers are write-once per question.
type Round struct {
	Topic     string
	Questions []quizgen.Question

	answers []int
	current int
}

// NewRound starts a round over the given questions.
// A round with no questions is born finished.
func NewRound(topic string, questions []quizgen.Question) *Round {
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}
	return &Round{
		Topic:     topic,
		Questions: questions,
		answers:   answers,
	}
}

// Finished reports whether all questions have been answered and advanced past.
func (r *Round) Finished() bool {
	return r.current >= len(r.Questions)
}

// Current returns the active question and its zero-based position.
// Only valid while the round is not finished.
func (r *Round) Current() (quizgen.Question, int) {
	return r.Questions[r.current], r.current
}

// Answered reports whether the active question already has an answer.
func (r *Round) Answered() bool {
	if r.Finished() {
		return true
	}
	return r.answers[r.current] != unanswered
}

// Answer records the choice for the active question and reports whether
// it was correct. The first answer sticks.
func (r *Round) Answer(choice int) (bool, error) {
	if r.Finished() {
		return false, ErrRoundFinished
	}
	if a := r.answers[r.current]; a != unanswered {
		return a == r.Questions[r.current].CorrectIndex, ErrAlreadyAnswered
	}
	r.answers[r.current] = choice
	return choice == r.Questions[r.current].CorrectIndex, nil
}

// Advance moves to the next question. It reports whether another
// question is available; false means the round just finished.
func (r *Round) Advance() bool {
	if r.Finished() {
		return false
	}
	r.current++
	return !r.Finished()
}

// Score counts correct answers recorded so far.
func (r *Round) Score() int {
	score := 0
	for i, a := range r.answers {
		if a != unanswered && a == r.Questions[i].CorrectIndex {
			score++
		}
	}
	return score
}

// Len returns the number of questions in the round.
func (r *Round) Len() int {
	return len(r.Questions)
}

// Perfect reports whether every question was answered correctly.
// An empty round is never perfect; there is nothing to reward.
func (r *Round) Perfect() bool {
	return r.Len() > 0 && r.Score() == r.Len()
}
