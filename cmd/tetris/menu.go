package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start tetris in interactive menu mode.

The menu lets you pick the difficulty, toggle the ghost piece, reset
the options and browse the leaderboard. After a round you return to
the menu to play again.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change the selected option
  Enter/Space     - Select
  Tab             - High scores
  Q               - Quit

Examples:
  tetris menu
  tetris menu --difficulty easy
  tetris menu --store ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	tetrisCfg, err := loadConfig(cmd)
	exitOnError("loading config", err)

	logger, closeLog, err := newLogger("tetris", false)
	exitOnError("creating logger", err)

	store := openStore(logger)

	logger.Info("starting session", "store", flagStorePath)
	runErr := tui.RunSession(store, tetrisCfg, runtimeConfig(), logger)

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("could not close high score store", "error", err)
		}
	}
	closeLog()

	exitOnError("running menu", runErr)
}
