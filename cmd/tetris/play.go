package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round directly, skipping the menu.

Controls:
  Left/Right, A/D, H/L  - Move
  Down, S, J            - Soft drop
  Up, X, W, K           - Rotate clockwise
  Space                 - Hard drop
  C, Shift+Tab          - Hold
  P                     - Pause
  ?                     - Toggle help
  R                     - Restart
  Q/Esc                 - Leave the round
  Ctrl+S                - Save a screenshot
  Ctrl+C                - Quit

Difficulty options:
  easy     - 0.80s base fall interval
  normal   - 0.60s base fall interval
  hard     - 0.45s base fall interval
  extreme  - 0.30s base fall interval

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42
  tetris play --ghost=false --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	tetrisCfg, err := loadConfig(cmd)
	exitOnError("loading config", err)

	logger, closeLog, err := newLogger("tetris", false)
	exitOnError("creating logger", err)

	// Continue without storage - game still works
	store := openStore(logger)

	highScore := 0
	if store != nil {
		highScore = store.HighScore()
	}
	cfg := runtimeConfig()
	settings := tetris.SettingsFromConfig(tetrisCfg, cfg.Seed, highScore)

	logger.Info("starting round",
		"difficulty", tetrisCfg.Options.Difficulty,
		"ghost", tetrisCfg.Options.ShowGhost,
		"store", flagStorePath,
	)
	runErr := tui.Run(settings, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("could not close high score store", "error", err)
		}
	}
	closeLog()

	exitOnError("running game", runErr)
}
