package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quizgen"
	"github.com/masumhasan/eduplay/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress and LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() { _ = st.Close() }()

		ctx := context.Background()
		p := progress.Load(ctx, st.KV()).Current()

		fmt.Println("Progress")
		fmt.Printf("  Stars:            %d\n", p.Stars)
		fmt.Printf("  Quizzes finished: %d\n", p.QuizzesCompleted)
		fmt.Printf("  Objects found:    %d\n", p.ObjectsDiscovered)
		fmt.Printf("  Learning streak:  %d days\n", p.LearningStreak)
		fmt.Printf("  Quiz level:       %d (%s)\n", p.QuizLevel, quizgen.DifficultyForLevel(p.QuizLevel))

		llmStats, err := st.EventRepo().Stats(ctx)
		if err != nil {
			return fmt.Errorf("read llm stats: %w", err)
		}

		fmt.Println()
		fmt.Println("LLM usage")
		fmt.Printf("  Requests:      %d (%d failed)\n", llmStats.Requests, llmStats.Failures)
		fmt.Printf("  Input tokens:  %d\n", llmStats.InputTokens)
		fmt.Printf("  Output tokens: %d\n", llmStats.OutputTokens)

		usage, err := st.EventRepo().UsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("read model usage: %w", err)
		}

		var total float64
		priced := true
		for _, u := range usage {
			c := llm.LookupCost(u.Model)
			if c == nil {
				priced = false
				continue
			}
			total += c.Cost(u.InputTokens, u.OutputTokens)
		}
		if len(usage) > 0 {
			if priced {
				fmt.Printf("  Est. cost:     $%.4f\n", total)
			} else {
				fmt.Printf("  Est. cost:     $%.4f (some models unpriced)\n", total)
			}
		}

		return nil
	},
}
