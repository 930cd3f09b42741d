package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive either structured
// JSON, plain text, or tool calls to dispatch.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a response.
	// The request's Schema field, when set, instructs the provider to
	// return JSON conforming to that schema. The request's Tools field,
	// when set, lets the model answer with tool calls instead of text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's persona and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// (quiz questions, object analysis) this contains one user message;
	// the conversational buddy sends the full transcript.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// Tools declares functions the model may call. Mutually exclusive
	// with Schema; structured output and tool dispatch are different
	// response modes.
	Tools []Tool

	// Media carries inline attachments (camera frames, audio clips)
	// appended to the final user message.
	Media []MediaPart

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
// Exactly one of Content, ToolCall, ToolResult is meaningful:
// plain text for ordinary turns, ToolCall on an assistant message that
// replays a prior function invocation, ToolResult on a user message
// that carries the function's output back to the model.
type Message struct {
	Role       Role
	Content    string
	ToolCall   *ToolCall
	ToolResult *ToolResult
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "quiz-round".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Tool declares a callable function the model may invoke.
type Tool struct {
	Name        string
	Description string

	// Parameters is the JSON Schema for the tool's arguments.
	Parameters map[string]any
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	// ID correlates this call with its ToolResult. Providers without
	// native call IDs (Gemini) use the tool name.
	ID   string
	Name string
	Args json.RawMessage
}

// ToolResult carries a tool's output back into the conversation.
type ToolResult struct {
	CallID  string
	Name    string
	Content json.RawMessage
}

// MediaPart is an inline binary attachment.
type MediaPart struct {
	MIMEType string // e.g. "image/jpeg", "audio/wav"
	Data     []byte
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it is the
	// raw text response. Empty when the model answered with tool calls
	// and no accompanying text.
	Content json.RawMessage

	// ToolCalls lists the function invocations the model requested,
	// in order. Callers execute them and send ToolResult messages in a
	// follow-up Generate.
	ToolCalls []ToolCall

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "tool_use", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
