package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// menuItem identifies a row of the main menu.
type menuItem int

const (
	menuPlay menuItem = iota
	menuDifficulty
	menuGhost
	menuResetOptions
	menuScores
	menuQuit
)

var menuItems = []menuItem{menuPlay, menuDifficulty, menuGhost, menuResetOptions, menuScores, menuQuit}

// MenuChoice is what the player picked from the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
)

// MenuModel is the Bubble Tea model for the main menu and its options.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	options   config.Options
	defaults  config.Options
	keyMapper *KeyMapper
	quitting  bool
	choice    MenuChoice
}

// NewMenuModel creates a menu showing options. defaults is what
// "Reset Options" restores.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, options, defaults config.Options) MenuModel {
	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		options:   options,
		defaults:  defaults,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + len(menuItems)) % len(menuItems)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(menuItems)

	case MenuActionLeft, MenuActionRight:
		// Only option rows react to left/right.
		switch menuItems[m.cursor] {
		case menuDifficulty, menuGhost:
			m.activate()
		}

	case MenuActionSelect:
		return m.activateSelected()

	case MenuActionScoreboard:
		m.choice = MenuChoiceScores
	}

	return m, nil
}

func (m MenuModel) activateSelected() (tea.Model, tea.Cmd) {
	if menuItems[m.cursor] == menuQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.activate()
	return m, nil
}

// activate applies the row under the cursor.
func (m *MenuModel) activate() {
	switch menuItems[m.cursor] {
	case menuPlay:
		m.choice = MenuChoicePlay
	case menuDifficulty:
		m.options.Difficulty = m.options.Difficulty.Next()
	case menuGhost:
		m.options.ShowGhost = !m.options.ShowGhost
	case menuResetOptions:
		m.options = m.defaults
	case menuScores:
		m.choice = MenuChoiceScores
	}
}

func (m MenuModel) label(item menuItem) string {
	switch item {
	case menuPlay:
		return "Play"
	case menuDifficulty:
		return fmt.Sprintf("Difficulty: %s", m.options.Difficulty.Label())
	case menuGhost:
		return fmt.Sprintf("Ghost Piece: %s", onOff(m.options.ShowGhost))
	case menuResetOptions:
		return "Reset Options"
	case menuScores:
		return "High Scores"
	case menuQuit:
		return "Quit"
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("T E T R I S", m.width)))
	b.WriteString("\n\n")

	if m.store != nil {
		b.WriteString(centerText(fmt.Sprintf("Best: %d", m.store.HighScore()), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range menuItems {
		line := "  " + m.label(item)
		if i == m.cursor {
			line = "> " + m.label(item)
			b.WriteString(selectedStyle.Render(centerText(line, m.width)))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Left/Right: Change  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Options returns the options as currently set in the menu.
func (m MenuModel) Options() config.Options {
	return m.options
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
