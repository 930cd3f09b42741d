package quiz

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/masumhasan/eduplay/internal/progress"
	quizengine "github.com/masumhasan/eduplay/internal/quiz"
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
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type stubGenerator struct {
	questions []quizgen.Question
}

func (g *stubGenerator) Generate(_ context.Context, _ quizgen.GenerateInput) ([]quizgen.Question, error) {
	return g.questions, nil
}

func testQuestions() []quizgen.Question {
	return []quizgen.Question{
		{Text: "Which animal says 'Moo'?", Options: []string{"🐶 Dog", "🐮 Cow", "🐱 Cat", "🐦 Bird"}, CorrectIndex: 1},
		{Text: "What color is the sky?", Options: []string{"Blue", "Green", "Red", "Purple"}, CorrectIndex: 0},
		{Text: "How many legs does a spider have?", Options: []string{"Four", "Six", "Eight", "Ten"}, CorrectIndex: 2},
	}
}

func newTestScreen(t *testing.T) *QuizScreen {
	t.Helper()
	engine := quizengine.NewEngine(&stubGenerator{questions: testQuestions()}, testProgress())
	return New(engine)
}

func testProgress() *progress.Store {
	return progress.Load(context.Background(), newMemKV())
}

func keyPress(s *QuizScreen, key string) *QuizScreen {
	updated, cmd := s.Update(tea.KeyPressMsg{Code: rune(key[0]), Text: key})
	s = updated.(*QuizScreen)
	// Deliver the command's message like the runtime would, so answer
	// submissions reach the engine.
	if cmd != nil {
		updated, _ = s.Update(cmd())
		s = updated.(*QuizScreen)
	}
	return s
}

func TestQuizFlowFromTopicToScoreCard(t *testing.T) {
	s := newTestScreen(t)

	if s.phase != phaseTopic {
		t.Fatalf("initial phase = %d, want topic picker", s.phase)
	}

	// Start the first topic.
	updated, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = updated.(*QuizScreen)
	if s.phase != phaseLoading {
		t.Fatalf("phase after enter = %d, want loading", s.phase)
	}
	if cmd == nil {
		t.Fatal("expected a round generation command")
	}

	// Deliver the generated round directly.
	round, err := s.engine.NewThemedRound(context.Background(), s.topic)
	if err != nil {
		t.Fatalf("NewThemedRound: %v", err)
	}
	updated, _ = s.Update(roundReadyMsg{Round: round})
	s = updated.(*QuizScreen)
	if s.phase != phasePlaying {
		t.Fatalf("phase after round ready = %d, want playing", s.phase)
	}

	view := s.View(80, 24)
	if !strings.Contains(view, "Question 1 of 3") {
		t.Errorf("view missing question counter:\n%s", view)
	}
	if !strings.Contains(view, "Moo") {
		t.Errorf("view missing question text")
	}

	// Answer with the digit shortcut.
	s = keyPress(s, "2")
	if s.phase != phaseFeedback {
		t.Fatalf("phase after answer = %d, want feedback", s.phase)
	}
	if !s.choice.IsCorrect() {
		t.Error("option 2 should be correct")
	}

	// Advance through the remaining questions.
	s = keyPress(s, " ")
	if s.phase != phasePlaying {
		t.Fatalf("phase after advance = %d, want playing", s.phase)
	}
	s = keyPress(s, "1")
	s = keyPress(s, " ")
	s = keyPress(s, "3")

	// Completing the last question's feedback finishes the round.
	updated, cmd = s.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	s = updated.(*QuizScreen)
	if cmd == nil {
		t.Fatal("expected a completion command")
	}
	msg := cmd()
	done, ok := msg.(roundDoneMsg)
	if !ok {
		t.Fatalf("completion msg = %T, want roundDoneMsg", msg)
	}
	updated, _ = s.Update(done)
	s = updated.(*QuizScreen)
	if s.phase != phaseFinished {
		t.Fatalf("phase = %d, want finished", s.phase)
	}

	view = s.View(80, 24)
	if !strings.Contains(view, "3 of 3") {
		t.Errorf("score card missing perfect score:\n%s", view)
	}
	if !strings.Contains(view, "Perfect round") {
		t.Errorf("score card missing level-up banner:\n%s", view)
	}
}

func TestQuizGenerationFailureShowsFallbackRound(t *testing.T) {
	// The engine substitutes built-in questions when generation fails,
	// so the screen always reaches the playing phase.
	engine := quizengine.NewEngine(&failingGenerator{}, testProgress())
	s := NewWithTopic(engine, "Animals")

	round, err := engine.NewThemedRound(context.Background(), "Animals")
	if err != nil {
		t.Fatalf("fallback round should not error: %v", err)
	}
	updated, _ := s.Update(roundReadyMsg{Round: round})
	s = updated.(*QuizScreen)
	if s.phase != phasePlaying {
		t.Fatalf("phase = %d, want playing", s.phase)
	}
	if s.round.Len() == 0 {
		t.Fatal("fallback round is empty")
	}
}

type failingGenerator struct{}

func (g *failingGenerator) Generate(_ context.Context, _ quizgen.GenerateInput) ([]quizgen.Question, error) {
	return nil, context.DeadlineExceeded
}

func TestNewWithTopicSkipsPicker(t *testing.T) {
	s := NewWithTopic(newTestScreen(t).engine, "Space")
	if s.phase != phaseLoading {
		t.Fatalf("phase = %d, want loading", s.phase)
	}
	if s.topic != "Space" {
		t.Fatalf("topic = %q, want Space", s.topic)
	}
	if cmd := s.Init(); cmd == nil {
		t.Fatal("Init should start generation")
	}
}
