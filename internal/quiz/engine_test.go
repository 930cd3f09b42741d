package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quizgen"
)

type memKV struct {
	data map[string]json.RawMessage
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]json.RawMessage)}
}

func (m *memKV) Get(_ context.Context, key string) (json.RawMessage, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value json.RawMessage) error {
	m.data[key] = append(json.RawMessage(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestEngine(t *testing.T, responses ...llm.MockResponse) (*Engine, *progress.Store, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	prog := progress.Load(context.Background(), newMemKV())
	gen := quizgen.New(mock, quizgen.DefaultConfig())
	return NewEngine(gen, prog), prog, mock
}

func roundResponse() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`{
		"questions": [
			{"question": "q1", "options": ["🐟 a", "🐠 b", "🐡 c", "🦈 d"], "correctAnswer": 0},
			{"question": "q2", "options": ["🐟 a", "🐠 b", "🐡 c", "🦈 d"], "correctAnswer": 1},
			{"question": "q3", "options": ["🐟 a", "🐠 b", "🐡 c", "🦈 d"], "correctAnswer": 2}
		]
	}`)}
}

func TestEngine_PerfectRoundLevelsUp(t *testing.T) {
	ctx := context.Background()
	engine, prog, _ := newTestEngine(t, roundResponse())

	r, err := engine.NewThemedRound(ctx, "Ocean")
	if err != nil {
		t.Fatalf("new round: %v", err)
	}

	for !r.Finished() {
		q, _ := r.Current()
		correct, err := engine.SubmitAnswer(ctx, r, q.CorrectIndex)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !correct {
			t.Fatal("expected correct answer")
		}
		r.Advance()
	}

	snap, leveledUp, err := engine.CompleteRound(ctx, r)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !leveledUp {
		t.Fatal("perfect round should level up")
	}
	if snap.Stars != 3 {
		t.Fatalf("expected 3 stars, got %d", snap.Stars)
	}
	if snap.QuizzesCompleted != 1 {
		t.Fatalf("expected 1 quiz completed, got %d", snap.QuizzesCompleted)
	}
	if snap.QuizLevel != 2 {
		t.Fatalf("expected quiz level 2, got %d", snap.QuizLevel)
	}
	if prog.Current() != snap {
		t.Fatal("snapshot should match the store")
	}
}

func TestEngine_ImperfectRoundKeepsLevel(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t, roundResponse())

	r, _ := engine.NewThemedRound(ctx, "Ocean")

	engine.SubmitAnswer(ctx, r, 0) // correct
	r.Advance()
	engine.SubmitAnswer(ctx, r, 0) // wrong
	r.Advance()
	engine.SubmitAnswer(ctx, r, 2) // correct
	r.Advance()

	snap, leveledUp, err := engine.CompleteRound(ctx, r)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if leveledUp {
		t.Fatal("2/3 must not level up")
	}
	if snap.Stars != 2 {
		t.Fatalf("expected 2 stars, got %d", snap.Stars)
	}
	if snap.QuizLevel != 1 {
		t.Fatalf("expected quiz level 1, got %d", snap.QuizLevel)
	}
	if snap.QuizzesCompleted != 1 {
		t.Fatalf("expected 1 quiz completed, got %d", snap.QuizzesCompleted)
	}
}

func TestEngine_StarsAwardedAtAnswerTime(t *testing.T) {
	ctx := context.Background()
	engine, prog, _ := newTestEngine(t, roundResponse())

	r, _ := engine.NewThemedRound(ctx, "Ocean")

	engine.SubmitAnswer(ctx, r, 0)
	if prog.Current().Stars != 1 {
		t.Fatalf("expected star immediately after answer, got %d", prog.Current().Stars)
	}
	if prog.Current().QuizzesCompleted != 0 {
		t.Fatal("completion counter must wait for CompleteRound")
	}
}

func TestEngine_ReAnswerReturnsRecordedOutcome(t *testing.T) {
	ctx := context.Background()
	engine, prog, _ := newTestEngine(t, roundResponse())

	r, _ := engine.NewThemedRound(ctx, "Ocean")

	first, err := engine.SubmitAnswer(ctx, r, 0) // correct
	if err != nil || !first {
		t.Fatalf("first answer = (%v, %v), want (true, nil)", first, err)
	}

	second, err := engine.SubmitAnswer(ctx, r, 3) // mash a wrong key
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if second != first {
		t.Fatalf("re-answer outcome = %v, want the recorded %v", second, first)
	}
	if prog.Current().Stars != 1 {
		t.Fatalf("re-answer must not re-score, stars = %d", prog.Current().Stars)
	}
}

func TestEngine_GenerationFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	r, err := engine.NewThemedRound(ctx, "Ocean")
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 fallback question, got %d", r.Len())
	}
	q, _ := r.Current()
	if q.Text != "Which animal says 'Moo'?" {
		t.Fatalf("unexpected fallback question: %q", q.Text)
	}
}

func TestEngine_ObjectRoundAsksForOneQuestion(t *testing.T) {
	ctx := context.Background()
	engine, _, mock := newTestEngine(t, roundResponse())

	r, err := engine.NewObjectRound(ctx, "a red fire truck")
	if err != nil {
		t.Fatalf("new round: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", r.Len())
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Create 1 quiz question") {
		t.Fatalf("expected single-question prompt, got: %s", prompt)
	}
}
