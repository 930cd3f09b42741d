// Package chat runs the conversational buddy: an append-only transcript
// backed by an LLM persona that can call app tools mid-conversation.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/masumhasan/eduplay/internal/agents"
	"github.com/masumhasan/eduplay/internal/llm"
)

// Sender identifies who wrote a transcript message.
type Sender string

const (
	SenderChild Sender = "child"
	SenderBuddy Sender = "buddy"
)

// Message is one visible transcript entry.
type Message struct {
	Sender Sender
	Text   string
}

// Apology is what the buddy says when the provider fails. A child gets
// a friendly miss, never an error string.
const Apology = "Oops! My thinking cap slipped off. Can you say that again?"

const (
	maxResponseTokens = 512
	chatTemperature   = 0.9
)

// Session is one conversation with a persona. The transcript is
// append-only; Send is serialized so overlapping submissions cannot
// interleave their tool round-trips.
type Session struct {
	mu       sync.Mutex
	provider llm.Provider
	persona  agents.Profile
	tools    *Registry

	transcript []Message
	history    []llm.Message
}

// NewSession starts a conversation with the given persona. The buddy
// speaks first: a greeting is seeded because the transcript is empty.
func NewSession(provider llm.Provider, persona agents.Profile, tools *Registry) *Session {
	s := &Session{
		provider: provider,
		persona:  persona,
		tools:    tools,
	}
	if len(s.transcript) == 0 {
		greeting := fmt.Sprintf("Hi! I'm %s %s What should we explore today?", persona.Name, persona.AvatarGlyph)
		s.transcript = append(s.transcript, Message{Sender: SenderBuddy, Text: greeting})
		s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: greeting})
	}
	return s
}

// Persona returns the active persona.
func (s *Session) Persona() agents.Profile {
	return s.persona
}

// Transcript returns a snapshot of the visible conversation.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Send submits the child's message and returns the buddy's reply.
// When the model answers with tool calls, the first one is executed and
// its result round-tripped for a final text answer.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = llm.WithPurpose(ctx, "buddy-chat")

	s.transcript = append(s.transcript, Message{Sender: SenderChild, Text: text})
	s.history = append(s.history, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := s.generate(ctx)
	if err != nil {
		s.transcript = append(s.transcript, Message{Sender: SenderBuddy, Text: Apology})
		return Apology, nil
	}

	if len(resp.ToolCalls) > 0 {
		call := resp.ToolCalls[0]
		result := s.tools.Dispatch(ctx, call)

		s.history = append(s.history,
			llm.Message{Role: llm.RoleAssistant, ToolCall: &call},
			llm.Message{Role: llm.RoleUser, ToolResult: &llm.ToolResult{
				CallID:  call.ID,
				Name:    call.Name,
				Content: result,
			}},
		)

		resp, err = s.generate(ctx)
		if err != nil {
			s.transcript = append(s.transcript, Message{Sender: SenderBuddy, Text: Apology})
			return Apology, nil
		}
	}

	reply := string(resp.Content)
	s.transcript = append(s.transcript, Message{Sender: SenderBuddy, Text: reply})
	s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

func (s *Session) generate(ctx context.Context) (*llm.Response, error) {
	return s.provider.Generate(ctx, llm.Request{
		System:      s.persona.SystemInstruction,
		Messages:    s.history,
		Tools:       s.tools.Declarations(),
		MaxTokens:   maxResponseTokens,
		Temperature: chatTemperature,
	})
}
