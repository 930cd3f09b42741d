package chat

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/masumhasan/eduplay/internal/agents"
	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
)

type memKV struct {
	data map[string]json.RawMessage
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]json.RawMessage)}
}

func (m *memKV) Get(_ context.Context, key string) (json.RawMessage, error) {
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key string, value json.RawMessage) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestSession(responses ...llm.MockResponse) (*Session, *llm.MockProvider, *string) {
	mock := llm.NewMockProvider(responses...)
	prog := progress.Load(context.Background(), newMemKV())
	var startedTopic string
	tools := StandardTools(prog, func(topic string) { startedTopic = topic })
	return NewSession(mock, agents.Default(), tools), mock, &startedTopic
}

func TestNewSession_SeedsGreeting(t *testing.T) {
	s, _, _ := newTestSession()

	transcript := s.Transcript()
	if len(transcript) != 1 {
		t.Fatalf("expected 1 greeting message, got %d", len(transcript))
	}
	if transcript[0].Sender != SenderBuddy {
		t.Fatalf("greeting should come from the buddy, got %q", transcript[0].Sender)
	}
}

func TestSend_PlainReply(t *testing.T) {
	s, mock, _ := newTestSession(
		llm.MockResponse{Content: json.RawMessage("Kangaroos can't walk backwards!")},
	)

	reply, err := s.Send(context.Background(), "tell me a fun fact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Kangaroos can't walk backwards!" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	transcript := s.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("expected greeting + child + buddy, got %d messages", len(transcript))
	}
	if transcript[1].Sender != SenderChild || transcript[2].Sender != SenderBuddy {
		t.Fatalf("unexpected transcript order: %+v", transcript)
	}

	req := mock.Calls[0]
	if req.System != agents.Default().SystemInstruction {
		t.Error("expected persona system instruction on request")
	}
	if len(req.Tools) != 2 {
		t.Fatalf("expected 2 tools advertised, got %d", len(req.Tools))
	}
}

func TestSend_ToolCallRoundTrip(t *testing.T) {
	s, mock, startedTopic := newTestSession(
		llm.MockResponse{ToolCalls: []llm.ToolCall{{
			ID:   "call_1",
			Name: "startQuiz",
			Args: json.RawMessage(`{"topic":"Dinosaurs"}`),
		}}},
		llm.MockResponse{Content: json.RawMessage("Awesome, a dinosaur quiz is starting!")},
	)

	reply, err := s.Send(context.Background(), "let's play a quiz about dinosaurs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Awesome, a dinosaur quiz is starting!" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if *startedTopic != "Dinosaurs" {
		t.Fatalf("expected quiz handoff for Dinosaurs, got %q", *startedTopic)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 provider calls, got %d", mock.CallCount())
	}

	// The follow-up request must replay the call and carry its result.
	followUp := mock.Calls[1].Messages
	last := followUp[len(followUp)-1]
	if last.ToolResult == nil || last.ToolResult.CallID != "call_1" {
		t.Fatalf("expected tool result message, got %+v", last)
	}
	prev := followUp[len(followUp)-2]
	if prev.ToolCall == nil || prev.ToolCall.Name != "startQuiz" {
		t.Fatalf("expected replayed tool call, got %+v", prev)
	}
}

func TestSend_UnknownToolYieldsEmptyResult(t *testing.T) {
	s, mock, _ := newTestSession(
		llm.MockResponse{ToolCalls: []llm.ToolCall{{
			ID:   "call_9",
			Name: "launchRocket",
			Args: json.RawMessage(`{}`),
		}}},
		llm.MockResponse{Content: json.RawMessage("Let's stick to quizzes!")},
	)

	if _, err := s.Send(context.Background(), "launch a rocket"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	followUp := mock.Calls[1].Messages
	last := followUp[len(followUp)-1]
	if last.ToolResult == nil || string(last.ToolResult.Content) != `{}` {
		t.Fatalf("expected empty tool result, got %+v", last)
	}
}

func TestSend_ProviderErrorBecomesApology(t *testing.T) {
	s, _, _ := newTestSession(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)

	reply, err := s.Send(context.Background(), "hello?")
	if err != nil {
		t.Fatalf("failure must not surface as error: %v", err)
	}
	if reply != Apology {
		t.Fatalf("expected apology, got %q", reply)
	}

	transcript := s.Transcript()
	if transcript[len(transcript)-1].Text != Apology {
		t.Fatal("apology should land on the transcript")
	}
}

func TestGetUserProgressTool(t *testing.T) {
	prog := progress.Load(context.Background(), newMemKV())
	prog.Update(context.Background(), progress.Delta{Stars: progress.Int(7)})
	tools := StandardTools(prog, nil)

	result := tools.Dispatch(context.Background(), llm.ToolCall{Name: "getUserProgress", Args: json.RawMessage(`{}`)})

	var got progress.Progress
	if err := json.Unmarshal(result, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.Stars != 7 {
		t.Fatalf("expected 7 stars, got %d", got.Stars)
	}
}
