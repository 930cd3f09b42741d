package chat

import (
	"context"
	"encoding/json"

	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
)

// ToolHandler executes one tool invocation and returns its JSON result.
type ToolHandler func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

// Registry maps tool names to their declarations and handlers.
type Registry struct {
	decls    []llm.Tool
	handlers map[string]ToolHandler
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]ToolHandler)}
}

// Register adds a tool declaration with its handler.
func (r *Registry) Register(tool llm.Tool, h ToolHandler) {
	r.decls = append(r.decls, tool)
	r.handlers[tool.Name] = h
}

// Declarations returns the tools to advertise to the model.
func (r *Registry) Declarations() []llm.Tool {
	return r.decls
}

// Dispatch runs the named tool and returns its result. An unknown tool
// name yields an empty object so the conversation can continue; the
// model hallucinating a tool must not crash the chat.
func (r *Registry) Dispatch(ctx context.Context, call llm.ToolCall) json.RawMessage {
	h, ok := r.handlers[call.Name]
	if !ok {
		return json.RawMessage(`{}`)
	}
	result, err := h(ctx, call.Args)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return result
}

// startQuizArgs are the arguments the model passes to startQuiz.
type startQuizArgs struct {
	Topic string `json:"topic"`
}

// StandardTools builds the registry the buddy chat ships with:
// startQuiz hands off to the quiz flow, getUserProgress reads the
// learner's record so the buddy can brag about it.
func StandardTools(prog *progress.Store, startQuiz func(topic string)) *Registry {
	r := NewRegistry()

	r.Register(llm.Tool{
		Name:        "startQuiz",
		Description: "Start a quiz for the child about the given topic. Call this when the child asks to play a quiz.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"description": "The quiz topic, e.g. 'Animals' or 'Space'",
				},
			},
			"required": []any{"topic"},
		},
	}, func(_ context.Context, raw json.RawMessage) (json.RawMessage, error) {
		var args startQuizArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, err
		}
		if args.Topic == "" {
			args.Topic = "Surprise Me"
		}
		if startQuiz != nil {
			startQuiz(args.Topic)
		}
		result, _ := json.Marshal(map[string]any{"started": true, "topic": args.Topic})
		return result, nil
	})

	r.Register(llm.Tool{
		Name:        "getUserProgress",
		Description: "Get the child's stars, completed quizzes, discovered objects, and quiz level.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
		return json.Marshal(prog.Current())
	})

	return r
}
