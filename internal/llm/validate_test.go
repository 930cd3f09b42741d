package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func quizSchema() *Schema {
	return &Schema{
		Name:        "quiz-question-validate-test",
		Description: "A single quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correctAnswer": map[string]any{"type": "integer"},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	}
}

func TestValidate_NilSchemaPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ConformingJSON(t *testing.T) {
	raw := json.RawMessage(`{"question":"Which animal says 'Moo'?","options":["Dog","Cow"],"correctAnswer":1}`)
	if err := validateResponse(quizSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"question":"Which animal says 'Moo'?"}`)
	err := validateResponse(quizSchema(), raw)
	if err == nil {
		t.Fatal("expected error")
	}
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidate_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"question":"q","options":["a"],"correctAnswer":"one"}`)
	if err := validateResponse(quizSchema(), raw); err == nil {
		t.Fatal("expected error for string correctAnswer")
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"question":`)
	err := validateResponse(quizSchema(), raw)
	if err == nil {
		t.Fatal("expected error")
	}
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidate_SchemaCacheReuse(t *testing.T) {
	schema := quizSchema()
	raw := json.RawMessage(`{"question":"q","options":["a","b"],"correctAnswer":0}`)

	// Two passes exercise both the compile path and the cache path.
	for range 2 {
		if err := validateResponse(schema, raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, ok := schemaCache.Load(schema.Name); !ok {
		t.Fatal("expected compiled schema in cache")
	}
}
