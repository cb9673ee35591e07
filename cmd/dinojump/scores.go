package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinojump/internal/platform/tui"
	"github.com/vovakirdan/dinojump/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs and the high score.

Examples:
  dinojump scores
  dinojump scores -n 25
  dinojump scores -i
  dinojump scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, cfg.Storage.BestKey, width, height)
		return err
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		return err
	}
	best, err := store.LoadBest(cfg.Storage.BestKey)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Dino Jump")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dinojump play' to set the first high score!")
		if best > 0 {
			fmt.Printf("Best: %d\n", best)
		}
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Ticks", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "-----", "----", "----")

	for i, r := range runs {
		mode := "manual"
		if r.Autopilot {
			mode = "auto"
		}
		fmt.Printf("  %-4d  %-8d  %-8d  %-6s  %s\n",
			i+1, r.Score, r.Ticks, mode, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", best)
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Runs: %d  Average: %.1f  Ticks played: %d\n", stats.Runs, stats.AvgScore, stats.TotalTicks)
	}
	return nil
}
