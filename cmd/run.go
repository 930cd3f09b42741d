package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/masumhasan/eduplay/internal/app"
	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/media"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quiz"
	"github.com/masumhasan/eduplay/internal/quizgen"
	"github.com/masumhasan/eduplay/internal/scan"
	"github.com/masumhasan/eduplay/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// A local .env is convenient for API keys; absence is fine.
	_ = godotenv.Load()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	prog := progress.Load(ctx, st.KV())

	opts := app.Options{
		Progress: prog,
	}

	if key := os.Getenv("EDUPLAY_DAILY_API_KEY"); key != "" {
		opts.Rooms = media.NewRoomClient(key)
	}

	provider, err := newProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Provider = provider
		gen := quizgen.New(provider, quizgen.DefaultConfig())
		opts.Engine = quiz.NewEngine(gen, prog)
		opts.Analyzer = scan.NewAnalyzer(provider, prog)
	}

	return app.Run(opts)
}

// newProviderFromEnv builds a provider from EDUPLAY_* variables, falling
// back to probing well-known API key variables.
func newProviderFromEnv(ctx context.Context, events store.EventRepo) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return llm.NewProvider(ctx, cfg, events)
	}

	discovered, ok := llm.DiscoverConfig()
	if !ok {
		return nil, fmt.Errorf("no API key found (set EDUPLAY_LLM_PROVIDER or GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY / OPENROUTER_API_KEY)")
	}
	return llm.NewProvider(ctx, discovered, events)
}
