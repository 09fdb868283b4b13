package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// sessionScreen is the screen a session is currently showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the leaderboard reachable from both. It is the top-level model for local
// play and for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	tuning   config.TetrisConfig
	config   core.RuntimeConfig
	logger   *log.Logger
	username string

	screen sessionScreen
	menu   MenuModel
	game   *Model
	scores *ScoreboardModel

	quitting bool
}

// NewSessionModel creates a session. tetrisCfg supplies the tuning and the
// default options; store and logger may be nil.
func NewSessionModel(store *storage.Store, tetrisCfg config.TetrisConfig, cfg core.RuntimeConfig, logger *log.Logger, username string) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if username != "" {
		logger = logger.With("user", username)
	}

	return SessionModel{
		store:    store,
		tuning:   tetrisCfg,
		config:   cfg,
		logger:   logger,
		username: username,
		menu:     NewMenuModel(store, cfg, tetrisCfg.Options, tetrisCfg.Options),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case MenuChoicePlay:
		return m.startGame()
	case MenuChoiceScores:
		return m.showScores(0)
	}

	return m, cmd
}

// startGame builds a round from the options chosen in the menu.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	cfg := m.tuning
	cfg.Options = m.menu.Options()

	highScore := 0
	if m.store != nil {
		highScore = m.store.HighScore()
	}
	settings := tetris.SettingsFromConfig(cfg, m.config.Seed, highScore)

	m.logger.Info("round starting",
		"difficulty", cfg.Options.Difficulty,
		"ghost", cfg.Options.ShowGhost,
	)

	game := NewModel(settings, m.store, m.config, m.logger)
	m.game = &game
	m.screen = screenGame

	return m, m.game.Init()
}

// showScores switches to the leaderboard, selecting highlight if set.
func (m SessionModel) showScores(highlight int) (tea.Model, tea.Cmd) {
	scores := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, highlight)
	m.scores = &scores
	m.screen = screenScores
	return m, m.scores.Init()
}

// backToMenu returns to the menu, keeping the chosen options.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config, m.menu.Options(), m.tuning.Options)
	m.game = nil
	m.scores = nil
	m.screen = screenMenu
	return m, m.menu.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		// A fresh entry is worth showing before the menu.
		if rank := m.game.Rank(); rank > 0 {
			m.game = nil
			return m.showScores(rank)
		}
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the leaderboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoresModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = &scoresModel
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The scoreboard quits its own program on back; here it returns to the menu.
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, tetrisCfg config.TetrisConfig, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, tetrisCfg, cfg, logger, ""),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
