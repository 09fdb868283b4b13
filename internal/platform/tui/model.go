package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Model is the Bubble Tea model running one tetris game, including the
// initials prompt shown when a finished round makes the leaderboard.
type Model struct {
	game       *tetris.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	initials   textinput.Model
	prompting  bool // Initials prompt is open
	entryDone  bool // Leaderboard handled for the current game over
	rank       int  // Rank of the last saved entry, 0 if none
	standalone bool // Leaving the round ends the program

	quitting   bool
	backToMenu bool
}

// NewModel creates a model for a round with the given settings. store and
// logger may be nil.
func NewModel(settings tetris.Settings, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// A nil *Store must not become a non-nil interface.
	var saver tetris.HighScoreSaver
	if store != nil {
		saver = store
		settings.HighScore = max(settings.HighScore, store.HighScore())
	}

	ti := textinput.New()
	ti.Placeholder = storage.DefaultInitials
	ti.CharLimit = 3
	ti.Width = 4
	ti.Prompt = "Initials: "

	return Model{
		game:       tetris.NewGame(settings, saver),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		initials:   ti,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("round started", "seed", m.config.Seed)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.prompting {
		var cmd tea.Cmd
		m.initials, cmd = m.initials.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	switch {
	case isQuit:
		m.game.Flush()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionQuit:
		return m.leave()
	}

	return m, nil
}

// handlePromptKey routes keys to the initials input.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		score := m.gameState.Score
		m.rank = m.store.AddEntry(m.initials.Value(), score)
		m.logger.Info("leaderboard entry saved",
			"initials", storage.SanitizeInitials(m.initials.Value()),
			"score", score,
			"rank", m.rank,
		)
		m.closePrompt()
		return m, nil

	case tea.KeyEsc:
		m.logger.Debug("leaderboard entry skipped", "score", m.gameState.Score)
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.initials, cmd = m.initials.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.initials.Blur()
	m.initials.Reset()
}

// leave ends the round, keeping the best score.
func (m Model) leave() (tea.Model, tea.Cmd) {
	m.game.Flush()
	m.backToMenu = true
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events without restarting the round.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// The prompt freezes the finished round.
	if m.prompting {
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame, now)
	m.inputFrame.Clear()

	wasOver := m.gameState.GameOver
	m.gameState = result.State

	if !m.gameState.GameOver {
		// A restart opens a fresh leaderboard chance.
		m.entryDone = false
		m.rank = 0
		return m, tickCmd(m.config.TickRate)
	}

	if !wasOver {
		m.logger.Info("round over",
			"score", m.gameState.Score,
			"level", m.gameState.Level,
			"lines", m.gameState.Lines,
		)
	}

	if !m.entryDone {
		m.entryDone = true
		if m.store != nil && m.store.Qualifies(m.gameState.Score) {
			m.prompting = true
			return m, tea.Batch(m.initials.Focus(), tickCmd(m.config.TickRate))
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.prompting {
		return m.promptView()
	}

	m.game.Render(m.screen)
	view := RenderScreen(m.screen)
	if m.rank > 0 && m.gameState.GameOver {
		view += "\n" + centerText(fmt.Sprintf("Saved as #%d on the leaderboard", m.rank), m.config.ScreenW)
	}
	return view
}

// promptView renders the new-entry panel in place of the board.
func (m Model) promptView() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("57")).
		Padding(1, 3)

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("NEW HIGH SCORE"),
		"",
		fmt.Sprintf("Score %d   Level %d   Lines %d", m.gameState.Score, m.gameState.Level, m.gameState.Lines),
		"",
		m.initials.View(),
		"",
		hintStyle.Render("enter: save  esc: skip"),
	)

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(body))
}

// BackToMenu reports whether the player left the round.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to end the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Rank returns the leaderboard rank of the entry saved this round, or 0.
func (m Model) Rank() int {
	return m.rank
}

// Run plays a single game in its own program until the player leaves.
func Run(settings tetris.Settings, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(settings, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
