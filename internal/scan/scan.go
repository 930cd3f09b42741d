// Package scan turns a captured photo or clip into a discovery: the
// buddy identifies the object and comes back with facts and a question.
package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
)

// Discovery is the buddy's structured reaction to a scanned object.
type Discovery struct {
	// Identification names the object in kid terms, e.g. "a red fire truck".
	Identification string `json:"identification"`

	// FunFacts holds 1 to 3 short facts about the object.
	FunFacts []string `json:"funFacts"`

	// SoundSuggestion optionally names a sound to play, e.g. "siren".
	SoundSuggestion string `json:"soundSuggestion,omitempty"`

	// Quiz is a follow-up question to keep the child engaged.
	Quiz string `json:"quiz"`

	// Encouragement is a cheer for scanning something new.
	Encouragement string `json:"encouragement"`
}

// DiscoverySchema constrains the provider's scan response.
var DiscoverySchema = &llm.Schema{
	Name:        "object-discovery",
	Description: "The learning buddy's reaction to an object a child scanned",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"identification": map[string]any{
				"type":        "string",
				"description": "What the object is, in words a young child knows",
			},
			"funFacts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1 to 3 short, fun facts about the object",
			},
			"soundSuggestion": map[string]any{
				"type":        "string",
				"description": "Optional: a sound associated with the object, e.g. 'siren', 'moo'",
			},
			"quiz": map[string]any{
				"type":        "string",
				"description": "One follow-up question about the object",
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "A short cheer for the child's discovery",
			},
		},
		"required":             []any{"identification", "funFacts", "quiz", "encouragement"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are an enthusiastic learning buddy for children aged 4 to 8.
A child shows you a photo, video, or sound of something they found. Identify it,
share fun facts in very simple words, suggest a sound it makes if it has one,
ask one playful follow-up question, and cheer them on. Keep everything short,
joyful, and safe for young children.`

// Analyzer runs object discovery against the provider and records
// each success on the learner's progress.
type Analyzer struct {
	provider llm.Provider
	progress *progress.Store
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(provider llm.Provider, prog *progress.Store) *Analyzer {
	return &Analyzer{provider: provider, progress: prog}
}

// Analyze sends the media to the provider and returns the discovery.
// The discovered-objects counter increments on success only.
func (a *Analyzer) Analyze(ctx context.Context, mimeType string, data []byte) (*Discovery, error) {
	ctx = llm.WithPurpose(ctx, "object-scan")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "What did I find? Tell me about it!"},
		},
		Media:     []llm.MediaPart{{MIMEType: mimeType, Data: data}},
		Schema:    DiscoverySchema,
		MaxTokens: 512,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze object: %w", err)
	}

	var d Discovery
	if err := json.Unmarshal(resp.Content, &d); err != nil {
		return nil, fmt.Errorf("parse discovery: %w", err)
	}
	if d.Identification == "" || len(d.FunFacts) == 0 {
		return nil, fmt.Errorf("incomplete discovery response")
	}
	if len(d.FunFacts) > 3 {
		d.FunFacts = d.FunFacts[:3]
	}

	cur := a.progress.Current()
	if _, err := a.progress.Update(ctx, progress.Delta{
		ObjectsDiscovered: progress.Int(cur.ObjectsDiscovered + 1),
	}); err != nil {
		return &d, err
	}

	return &d, nil
}

// mimeByExt maps media file extensions the scanner accepts.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
}

// MIMEForFile returns the media type for a scannable file, or false
// for unsupported extensions.
func MIMEForFile(path string) (string, bool) {
	mime, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	return mime, ok
}
