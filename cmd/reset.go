package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learning progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("This erases all stars, badges, and quiz levels. Continue? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

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
		if err := progress.Load(ctx, st.KV()).Reset(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}

		fmt.Println("Progress reset. A fresh adventure awaits!")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
