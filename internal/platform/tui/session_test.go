package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 3}
	m := NewSessionModel(store, config.DefaultTetrisConfig(), cfg, nil, "tester")

	// Turn the ghost off, then play.
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if m.game.game.Engine().Settings().ShowGhost {
		t.Error("round should use the options chosen in the menu")
	}
	if !strings.Contains(m.View(), "TETRIS") {
		t.Error("game view should show the HUD")
	}

	// Leaving the round returns to the menu with the options kept.
	m = sendSession(t, m, runeKey('q'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.menu.Options().ShowGhost {
		t.Error("menu should keep the chosen options")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scores view should show the title")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}

	m = sendSession(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in the menu should quit the session")
	}
}
