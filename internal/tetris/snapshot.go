package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// SquareState says what occupies a square of the rendered grid.
type SquareState uint8

const (
	SquareEmpty SquareState = iota
	SquareLocked
	SquareGhost
	SquareActive
)

// Square is one cell of the rendered grid.
type Square struct {
	State SquareState
	Kind  Kind // Meaningful unless State is SquareEmpty
}

// Snapshot is a read-only view of a round for rendering and determinism
// tests.
type Snapshot struct {
	Tick uint64

	// Grid is the board with the ghost and the active piece projected.
	Grid       [Height][Width]Square
	ActiveKind Kind
	Active     [4]core.Point // Board coordinates of the falling piece
	GhostY     int

	Hold     Kind
	HasHold  bool
	HoldUsed bool
	Next     []Kind

	Score        int
	HighScore    int
	Level        int
	Lines        int
	Combo        int
	BackToBack   bool
	FallInterval time.Duration
	LastClear    ClearEvent

	ShowGhost bool
	ShowHelp  bool
	State     GameStateType
}

// Snapshot returns the current round snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.engine

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case e.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	progress := e.Progress()
	hold, hasHold := e.Held()
	snap := Snapshot{
		Tick:         g.tick,
		ActiveKind:   e.Piece().Kind,
		Active:       e.Piece().Cells(),
		GhostY:       e.GhostY(),
		Hold:         hold,
		HasHold:      hasHold,
		HoldUsed:     e.HoldUsed(),
		Next:         e.Next(g.settings.PreviewCount),
		Score:        progress.Score,
		HighScore:    e.HighScore(),
		Level:        progress.Level,
		Lines:        progress.Lines,
		Combo:        progress.Combo,
		BackToBack:   progress.BackToBack,
		FallInterval: e.FallInterval(),
		LastClear:    e.LastClear(),
		ShowGhost:    g.settings.ShowGhost,
		ShowHelp:     g.showHelp,
		State:        state,
	}
	snap.Grid = projectGrid(e, g.settings.ShowGhost)
	return snap
}

// projectGrid overlays the ghost and the active piece on the board.
// The ghost only fills empty squares; the active piece is drawn last.
func projectGrid(e *Engine, showGhost bool) [Height][Width]Square {
	var grid [Height][Width]Square

	board := e.Board()
	for y := range Height {
		for x := range Width {
			if c := board[y][x]; c.Filled() {
				grid[y][x] = Square{State: SquareLocked, Kind: c.Kind()}
			}
		}
	}

	piece := e.Piece()
	if showGhost && !e.GameOver() {
		ghost := piece
		ghost.Y = e.GhostY()
		for _, c := range ghost.Cells() {
			if InBounds(c.X, c.Y) && grid[c.Y][c.X].State == SquareEmpty {
				grid[c.Y][c.X] = Square{State: SquareGhost, Kind: piece.Kind}
			}
		}
	}

	for _, c := range piece.Cells() {
		if InBounds(c.X, c.Y) {
			grid[c.Y][c.X] = Square{State: SquareActive, Kind: piece.Kind}
		}
	}
	return grid
}
