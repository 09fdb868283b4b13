// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                   - Start the main menu (same as "tetris menu")
//	tetris play              - Start a round directly
//	tetris menu              - Main menu with options and high scores
//	tetris scores            - Show the leaderboard
//	tetris serve             - Start SSH server for remote play
//	tetris config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Input poll rate (default: 20)
//	--seed <value>       - RNG seed for a reproducible piece sequence
//	--store <path>       - High score file (default: ~/.tetris/highscore.json)
//	--log-file <path>    - Log file for interactive commands
//	--log-level <level>  - debug, info, warn or error
//	--config <path>      - Custom tetris.yaml
//	--difficulty <name>  - easy, normal, hard or extreme
//	--ghost              - Show the ghost piece
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagStorePath  string
	flagLogFile    string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagGhost      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - Stack falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block puzzle game with a 7-bag
randomizer, hold slot, ghost piece, combos and back-to-back bonuses.

Available commands:
  play     - Start a round directly
  menu     - Main menu (default)
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  tetris
  tetris play --difficulty hard
  tetris play --seed 42 --ghost=false
  tetris scores
  tetris serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 20, "Input poll rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store", "~/.tetris/highscore.json", "High score file (.json document or .db SQLite)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tetris/tetris.log", "Log file for interactive commands")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, extreme")
	rootCmd.PersistentFlags().BoolVar(&flagGhost, "ghost", true, "Show the ghost piece")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads tetris.yaml and applies --difficulty and --ghost.
func loadConfig(cmd *cobra.Command) (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}

	var ghost *bool
	if cmd.Flags().Changed("ghost") {
		ghost = &flagGhost
	}
	if err := config.ApplyOverrides(&cfg, flagDifficulty, ghost); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger creates the command logger. Interactive commands own the
// terminal, so they log to --log-file; serve logs to stderr.
// The returned close function is always safe to call.
func newLogger(prefix string, toStderr bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, func() {}, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if !toStderr {
		out = io.Discard
		if flagLogFile != "" {
			f, fileErr := openLogFile(flagLogFile)
			if fileErr != nil {
				return nil, closeFn, fileErr
			}
			out = f
			closeFn = func() {
				//nolint:errcheck // Best-effort close
				f.Close()
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

func openLogFile(path string) (*os.File, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand log file path: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openStore opens the high score store, or returns nil so the game can
// still be played without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagStorePath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open high score store: %v\n", err)
		logger.Warn("could not open high score store", "path", flagStorePath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// exitOnError prints err and exits when it is not nil.
func exitOnError(what string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
