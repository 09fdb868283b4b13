package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout of the play screen, in terminal cells.
const (
	cellWidth  = 2 // Each board square is drawn two columns wide
	hudHeight  = 1
	sideWidth  = 12
	wellWidth  = Width*cellWidth + 2
	wellHeight = Height + 2

	// MinScreenW and MinScreenH are the smallest terminal the round fits in.
	MinScreenW = sideWidth + 1 + wellWidth + 1 + sideWidth
	MinScreenH = hudHeight + wellHeight + 1
)

// Game drives an Engine from the tick loop: it routes input actions,
// applies time-based gravity, and owns pause and help state.
type Game struct {
	settings Settings
	saver    HighScoreSaver
	engine   *Engine
	seeds    *rand.Rand

	tick     uint64
	lastFall time.Time

	screenW int
	screenH int

	paused   bool
	showHelp bool
	tooSmall bool
}

// NewGame creates a game. Call Reset before the first Step.
func NewGame(settings Settings, saver HighScoreSaver) *Game {
	return &Game{
		settings: settings,
		saver:    saver,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a fresh round. The all-time high score reached so far
// carries into the new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	settings := g.settings
	settings.Seed = cfg.Seed
	if g.engine != nil {
		settings.HighScore = max(settings.HighScore, g.engine.HighScore())
	}
	g.settings = settings

	g.engine = NewEngine(settings, g.saver)
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.lastFall = time.Time{}
	g.paused = false
	g.showHelp = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < MinScreenW || h < MinScreenH
}

// Step advances the round by one tick at wall-clock time now.
func (g *Game) Step(input core.InputFrame, now time.Time) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.seeds.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		g.lastFall = now
		return core.StepResult{State: g.State()}
	}

	// Gravity does not accumulate while the round is frozen.
	if g.lastFall.IsZero() || g.paused || g.tooSmall {
		g.lastFall = now
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if input.Has(core.ActionHelp) {
		g.showHelp = !g.showHelp
	}
	if g.engine.GameOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	locks := g.engine.Locks()
	lines := g.engine.Progress().Lines

	g.applyInput(input)

	if now.Sub(g.lastFall) > g.engine.FallInterval() {
		g.engine.Move(0, 1, false)
		g.lastFall = now
	}

	return core.StepResult{
		State:   g.State(),
		Locked:  g.engine.Locks() - locks,
		Cleared: g.engine.Progress().Lines - lines,
	}
}

// applyInput runs the piece commands in a fixed order: shifts and soft
// drop first, then rotate, hard drop and hold.
func (g *Game) applyInput(input core.InputFrame) {
	if input.Has(core.ActionLeft) {
		g.engine.Move(-1, 0, false)
	}
	if input.Has(core.ActionRight) {
		g.engine.Move(1, 0, false)
	}
	if input.Has(core.ActionSoftDrop) {
		g.engine.Move(0, 1, true)
	}
	if input.Has(core.ActionRotate) {
		g.engine.Rotate()
	}
	if input.Has(core.ActionHardDrop) {
		g.engine.HardDrop()
	}
	if input.Has(core.ActionHold) {
		g.engine.Hold()
	}
}

// Flush persists the high score if this round beat it.
func (g *Game) Flush() {
	if g.engine != nil {
		g.engine.Flush()
	}
}

// Engine exposes the underlying round state machine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	p := g.engine.Progress()
	return core.GameState{
		Score:     p.Score,
		HighScore: g.engine.HighScore(),
		Level:     p.Level,
		Lines:     p.Lines,
		GameOver:  g.engine.GameOver(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→ move | ↓ soft drop | ↑ rotate | Space drop | C hold | P pause | ? help | R restart | Q quit"
}
