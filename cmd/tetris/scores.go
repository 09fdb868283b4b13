package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 scores and the all-time best.

Examples:
  tetris scores
  tetris scores --tui
  tetris scores --store ./scores.db
  tetris scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the leaderboard in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Erase the high score and leaderboard")
}

func runScores(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("tetris", false)
	exitOnError("creating logger", err)
	defer closeLog()

	store := openStore(logger)
	if store == nil {
		return
	}
	//nolint:errcheck // Best-effort close
	defer store.Close()

	if flagScoresClear {
		store.Clear()
		logger.Info("leaderboard cleared", "store", store.Path())
		fmt.Println("Leaderboard cleared.")
		return
	}

	if flagScoresTUI {
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error showing scoreboard: %v\n", err)
		}
		return
	}

	record := store.Load()

	fmt.Println("High Scores - Tetris")
	fmt.Println()

	if len(record.Leaderboard) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %s\n", "Rank", "Initials", "Score")
	fmt.Printf("  %-4s  %-8s  %s\n", "----", "--------", "-----")

	for i, entry := range record.Leaderboard {
		fmt.Printf("  %-4d  %-8s  %d\n", i+1, entry.Initials, entry.Score)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", record.HighScore)
}
