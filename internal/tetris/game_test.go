package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestGame(seed int64) *Game {
	g := NewGame(DefaultSettings(), nil)
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

func TestGameGravity(t *testing.T) {
	g := newTestGame(1)
	t0 := time.Unix(1000, 0)
	empty := core.NewInputFrame()

	g.Step(empty, t0)
	y := g.Engine().Piece().Y

	interval := g.Engine().FallInterval()
	g.Step(empty, t0.Add(interval-time.Millisecond))
	if got := g.Engine().Piece().Y; got != y {
		t.Fatalf("piece fell early: Y %d -> %d", y, got)
	}

	g.Step(empty, t0.Add(interval+time.Millisecond))
	if got := g.Engine().Piece().Y; got != y+1 {
		t.Errorf("piece should fall one row: Y = %d, want %d", got, y+1)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(2)
	t0 := time.Unix(1000, 0)

	g.Step(core.NewInputFrame(core.ActionPause), t0)
	if !g.State().Paused {
		t.Fatal("pause action should pause the round")
	}

	y := g.Engine().Piece().Y
	g.Step(core.NewInputFrame(core.ActionLeft, core.ActionHardDrop), t0.Add(10*time.Second))
	if g.Engine().Piece().Y != y || g.Engine().Locks() != 0 {
		t.Error("paused round should ignore input and gravity")
	}

	g.Step(core.NewInputFrame(core.ActionPause), t0.Add(11*time.Second))
	if g.State().Paused {
		t.Fatal("second pause action should resume")
	}
	if g.Engine().Piece().Y != y {
		t.Error("gravity should not fire immediately after resuming")
	}
}

func TestGameHelpToggle(t *testing.T) {
	g := newTestGame(3)
	now := time.Unix(1000, 0)

	g.Step(core.NewInputFrame(core.ActionHelp), now)
	if !g.Snapshot().ShowHelp {
		t.Fatal("help action should show help")
	}
	if g.State().Paused {
		t.Error("help should not pause the round")
	}
	g.Step(core.NewInputFrame(core.ActionHelp), now)
	if g.Snapshot().ShowHelp {
		t.Error("second help action should hide help")
	}
}

func TestGameStepResult(t *testing.T) {
	g := newTestGame(4)
	now := time.Unix(1000, 0)

	res := g.Step(core.NewInputFrame(core.ActionHardDrop), now)
	if res.Locked != 1 {
		t.Errorf("Locked = %d, want 1", res.Locked)
	}
	if res.Cleared != 0 {
		t.Errorf("Cleared = %d, want 0", res.Cleared)
	}
	if res.State.Score == 0 {
		t.Error("hard drop should score")
	}
}

func TestGameRestartKeepsHighScore(t *testing.T) {
	g := newTestGame(5)
	now := time.Unix(1000, 0)

	g.Step(core.NewInputFrame(core.ActionHardDrop), now)
	score := g.State().Score
	if score == 0 {
		t.Fatal("expected a score after hard drop")
	}

	g.Step(core.NewInputFrame(core.ActionRestart), now)
	state := g.State()
	if state.Score != 0 || state.Level != 1 || state.Lines != 0 {
		t.Errorf("restart state = %+v, want a fresh round", state)
	}
	if state.HighScore != score {
		t.Errorf("HighScore = %d, want %d", state.HighScore, score)
	}
	if board := g.Engine().Board(); board.FilledCount() != 0 {
		t.Error("restart should clear the board")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := NewGame(DefaultSettings(), nil)
	g.Reset(core.RuntimeConfig{Seed: 6, ScreenW: 20, ScreenH: 10})

	if !g.State().Paused {
		t.Error("small window should pause the round")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	g.Resize(MinScreenW, MinScreenH)
	if g.State().Paused {
		t.Error("resize to the minimum should resume")
	}
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	actions := []core.Action{
		core.ActionLeft, core.ActionRotate, core.ActionSoftDrop,
		core.ActionRight, core.ActionHardDrop, core.ActionHold,
	}

	t0 := time.Unix(1000, 0)
	input := core.NewInputFrame()
	for i := range 400 {
		input.Clear()
		input.Set(actions[i%len(actions)])
		if i%7 == 0 {
			input.Set(core.ActionHardDrop)
		}

		now := t0.Add(time.Duration(i) * 50 * time.Millisecond)
		g1.Step(input, now)
		g2.Step(input, now)
	}

	s1 := g1.Snapshot()
	s2 := g2.Snapshot()

	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Lines != s2.Lines {
		t.Errorf("snapshots diverged: %+v vs %+v", s1.Score, s2.Score)
	}
	if s1.Grid != s2.Grid {
		t.Error("grids diverged")
	}
	if s1.ActiveKind != s2.ActiveKind || s1.Active != s2.Active {
		t.Error("active pieces diverged")
	}
}

func TestSnapshotGhostProjection(t *testing.T) {
	g := newTestGame(7)

	snap := g.Snapshot()
	ghosts, active := 0, 0
	for y := range Height {
		for x := range Width {
			switch snap.Grid[y][x].State {
			case SquareGhost:
				ghosts++
			case SquareActive:
				active++
			}
		}
	}
	if ghosts != 4 || active != 4 {
		t.Errorf("ghost %d active %d squares, want 4 and 4", ghosts, active)
	}

	settings := DefaultSettings()
	settings.ShowGhost = false
	g = NewGame(settings, nil)
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})
	for _, row := range g.Snapshot().Grid {
		for _, sq := range row {
			if sq.State == SquareGhost {
				t.Fatal("ghost should be hidden when disabled")
			}
		}
	}
}

func TestRenderPlayScreen(t *testing.T) {
	g := newTestGame(8)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"TETRIS", "Score: 0", "HOLD", "NEXT", "? help"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
	if !strings.ContainsRune(out, blockRune) || !strings.ContainsRune(out, ghostRune) {
		t.Error("render output should contain piece and ghost squares")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(9)
	screen := core.NewScreen(80, 24)
	now := time.Unix(1000, 0)

	g.Step(core.NewInputFrame(core.ActionHelp), now)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"hard drop", "hold", "?       help"} {
		if !strings.Contains(out, want) {
			t.Errorf("help overlay missing %q", want)
		}
	}
	if strings.Contains(out, "? help") {
		t.Error("one-line hint should be hidden while help is shown")
	}
	g.Step(core.NewInputFrame(core.ActionHelp), now)

	g.Step(core.NewInputFrame(core.ActionPause), now)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused round should render the pause overlay")
	}

	g.Step(core.NewInputFrame(core.ActionPause), now)
	for !g.State().GameOver {
		g.Step(core.NewInputFrame(core.ActionHardDrop), now)
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("finished round should render the game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewGame(DefaultSettings(), nil)
	g.Reset(core.RuntimeConfig{Seed: 10, ScreenW: 30, ScreenH: 10})
	screen := core.NewScreen(30, 10)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("small window should render the resize message")
	}
}
