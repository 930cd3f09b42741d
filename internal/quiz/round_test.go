package quiz

import (
	"errors"
	"testing"

	"github.com/masumhasan/eduplay/internal/quizgen"
)

func threeQuestions() []quizgen.Question {
	return []quizgen.Question{
		{Text: "q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{Text: "q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Text: "q3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
	}
}

func TestRound_PerfectPlaythrough(t *testing.T) {
	r := NewRound("Animals", threeQuestions())

	for i := 0; i < 3; i++ {
		q, pos := r.Current()
		if pos != i {
			t.Fatalf("expected position %d, got %d", i, pos)
		}
		correct, err := r.Answer(q.CorrectIndex)
		if err != nil {
			t.Fatalf("answer: %v", err)
		}
		if !correct {
			t.Fatalf("expected correct answer at position %d", i)
		}
		r.Advance()
	}

	if !r.Finished() {
		t.Fatal("expected round to be finished")
	}
	if r.Score() != 3 {
		t.Fatalf("expected score 3, got %d", r.Score())
	}
	if !r.Perfect() {
		t.Fatal("expected perfect round")
	}
}

func TestRound_AnswerIsWriteOnce(t *testing.T) {
	r := NewRound("Animals", threeQuestions())

	if _, err := r.Answer(3); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	recorded, err := r.Answer(0)
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if recorded {
		t.Fatal("re-answer must report the recorded (wrong) outcome")
	}

	// The wrong first answer stands even though the retry was right.
	if r.Score() != 0 {
		t.Fatalf("expected score 0, got %d", r.Score())
	}
}

func TestRound_AnswerAfterFinish(t *testing.T) {
	r := NewRound("Animals", nil)

	if !r.Finished() {
		t.Fatal("empty round should start finished")
	}
	_, err := r.Answer(0)
	if !errors.Is(err, ErrRoundFinished) {
		t.Fatalf("expected ErrRoundFinished, got %v", err)
	}
}

func TestRound_EmptyRoundNeverPerfect(t *testing.T) {
	r := NewRound("Animals", nil)
	if r.Perfect() {
		t.Fatal("empty round must not count as perfect")
	}
}

func TestRound_AdvanceReportsRemaining(t *testing.T) {
	r := NewRound("Animals", threeQuestions())

	r.Answer(0)
	if !r.Advance() {
		t.Fatal("expected more questions after first advance")
	}
	r.Answer(0)
	if !r.Advance() {
		t.Fatal("expected more questions after second advance")
	}
	r.Answer(0)
	if r.Advance() {
		t.Fatal("expected round to finish on third advance")
	}
}

func TestRound_ImperfectScore(t *testing.T) {
	r := NewRound("Animals", threeQuestions())

	r.Answer(0) // correct
	r.Advance()
	r.Answer(0) // wrong
	r.Advance()
	r.Answer(2) // correct
	r.Advance()

	if r.Score() != 2 {
		t.Fatalf("expected score 2, got %d", r.Score())
	}
	if r.Perfect() {
		t.Fatal("2/3 must not be perfect")
	}
}
