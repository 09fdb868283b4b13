package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// kickOffsets is the horizontal wall kick search order for rotations.
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// HighScoreSaver persists a new all-time best score.
// Implementations must not fail the caller; persistence is best-effort.
type HighScoreSaver interface {
	SaveHighScore(score int)
}

// Settings is everything a round needs from the outside world.
type Settings struct {
	Rules        Rules
	PreviewCount int
	ShowGhost    bool
	Seed         int64
	// HighScore is the all-time best known when the round starts.
	HighScore int
}

// DefaultSettings returns normal difficulty settings with ghost enabled.
func DefaultSettings() Settings {
	return Settings{
		Rules:        DefaultRules(),
		PreviewCount: 5,
		ShowGhost:    true,
	}
}

// SettingsFromConfig derives round settings from the loaded configuration.
func SettingsFromConfig(cfg config.TetrisConfig, seed int64, highScore int) Settings {
	return Settings{
		Rules: Rules{
			LinesPerLevel:    cfg.Speed.LinesPerLevel,
			BaseFallInterval: cfg.BaseFallInterval(cfg.Options.Difficulty),
			MinFallInterval:  cfg.MinFallInterval(),
			LevelFactor:      cfg.Speed.LevelFactor,
		},
		PreviewCount: cfg.Queue.PreviewCount,
		ShowGhost:    cfg.Options.ShowGhost,
		Seed:         seed,
		HighScore:    highScore,
	}
}

// Engine is the state machine of a single round: the falling piece, the
// board, the queue and hold slot, and scoring. It is not safe for
// concurrent use; the round loop owns it exclusively.
type Engine struct {
	settings Settings
	saver    HighScoreSaver

	board    Board
	piece    Piece
	queue    *Queue
	hold     Kind
	hasHold  bool
	holdUsed bool

	progress     Progress
	fallInterval time.Duration
	highScore    int
	gameOver     bool

	lastClear ClearEvent
	locks     int // Pieces locked this round
}

// NewEngine creates an engine and spawns the first piece.
// saver may be nil when nothing should be persisted.
func NewEngine(settings Settings, saver HighScoreSaver) *Engine {
	e := &Engine{
		settings:  settings,
		saver:     saver,
		highScore: settings.HighScore,
	}
	e.Reset(settings.Seed)
	return e
}

// Reset starts a new round with the given seed. The all-time high score
// carries over.
func (e *Engine) Reset(seed int64) {
	e.settings.Seed = seed
	rng := rand.New(rand.NewSource(seed))

	e.board = Board{}
	e.queue = NewQueue(NewBag(rng), e.settings.PreviewCount)
	e.hold = 0
	e.hasHold = false
	e.holdUsed = false
	e.progress = NewProgress()
	e.fallInterval = e.settings.Rules.FallInterval(1)
	e.gameOver = false
	e.lastClear = ClearEvent{}
	e.locks = 0

	e.spawn()
}

// spawn takes the next kind from the queue and places it at the top.
func (e *Engine) spawn() {
	e.piece = NewPiece(e.queue.Pop())
	e.holdUsed = false
	if e.board.Collides(e.piece, 0, 0, e.piece.Rotation) {
		e.gameOver = true
		e.updateHighScore()
	}
}

// Move shifts the piece by (dx, dy). A blocked downward move locks the
// piece. softDrop awards one point per row moved down.
// Returns true if the piece moved.
func (e *Engine) Move(dx, dy int, softDrop bool) bool {
	if e.gameOver {
		return false
	}

	if !e.board.Collides(e.piece, dx, dy, e.piece.Rotation) {
		e.piece.X += dx
		e.piece.Y += dy
		e.piece.Rotated = false
		if dy > 0 && softDrop {
			e.progress.Score += softDropPoints
			e.updateHighScore()
		}
		return true
	}

	if dy > 0 {
		e.lock()
	}
	return false
}

// Rotate turns the piece clockwise, trying the horizontal kicks in order.
// Returns false and leaves the piece untouched if every kick collides.
func (e *Engine) Rotate() bool {
	if e.gameOver {
		return false
	}

	next := (e.piece.Rotation + 1) % e.piece.Kind.Rotations()
	for _, kick := range kickOffsets {
		if e.board.Collides(e.piece, kick, 0, next) {
			continue
		}
		e.piece.X += kick
		e.piece.Rotation = next
		e.piece.Rotated = true
		return true
	}
	return false
}

// HardDrop drops the piece to the floor, awards two points per row and
// locks it. Returns the distance dropped.
func (e *Engine) HardDrop() int {
	if e.gameOver {
		return 0
	}

	distance := 0
	for !e.board.Collides(e.piece, 0, 1, e.piece.Rotation) {
		e.piece.Y++
		distance++
	}

	e.piece.Rotated = false
	e.progress.Score += distance * hardDropPoints
	e.updateHighScore()
	e.lock()
	return distance
}

// Hold stores the current kind. With an empty slot a fresh piece spawns;
// otherwise the held kind swaps in at the spawn position. Only one hold is
// allowed per spawned piece. Returns true if the hold happened.
func (e *Engine) Hold() bool {
	if e.gameOver || e.holdUsed {
		return false
	}

	current := e.piece.Kind
	if !e.hasHold {
		e.hold = current
		e.hasHold = true
		e.spawn()
	} else {
		e.piece = NewPiece(e.hold)
		e.hold = current
		if e.board.Collides(e.piece, 0, 0, e.piece.Rotation) {
			e.gameOver = true
			e.updateHighScore()
		}
	}

	e.holdUsed = true
	return true
}

// lock stamps the piece, clears rows, scores, and spawns the next piece.
func (e *Engine) lock() {
	tSpin := e.isTSpin()

	e.board.Lock(e.piece)
	rows := e.board.ClearFullRows()

	var ev ClearEvent
	e.progress, ev = e.settings.Rules.Apply(e.progress, rows, tSpin)
	if rows > 0 || tSpin {
		e.fallInterval = e.settings.Rules.FallInterval(e.progress.Level)
		e.lastClear = ev
		e.updateHighScore()
	}
	e.locks++

	e.spawn()
}

// isTSpin applies the three-corner rule: a T piece whose last action was a
// rotation, with at least three of the four diagonal neighbours of its
// anchor blocked. Mini and proper T-spins are not distinguished.
func (e *Engine) isTSpin() bool {
	if e.piece.Kind != KindT || !e.piece.Rotated {
		return false
	}

	corners := 0
	for _, d := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if e.board.Occupied(e.piece.X+d[0], e.piece.Y+d[1]) {
			corners++
		}
	}
	return corners >= 3
}

// updateHighScore raises and persists the all-time best if the current
// score exceeds it.
func (e *Engine) updateHighScore() {
	if e.progress.Score <= e.highScore {
		return
	}
	e.highScore = e.progress.Score
	if e.saver != nil {
		e.saver.SaveHighScore(e.highScore)
	}
}

// Flush persists the high score if the current score beat it.
// Called when the player quits mid-round.
func (e *Engine) Flush() {
	e.updateHighScore()
}

// GhostY returns the anchor row the piece would land on if hard dropped.
func (e *Engine) GhostY() int {
	y := e.piece.Y
	for !e.board.Collides(e.piece, 0, y-e.piece.Y+1, e.piece.Rotation) {
		y++
	}
	return y
}

// Board returns a copy of the playfield.
func (e *Engine) Board() Board {
	return e.board
}

// Piece returns the falling piece.
func (e *Engine) Piece() Piece {
	return e.piece
}

// Held returns the kind in the hold slot and whether the slot is filled.
func (e *Engine) Held() (Kind, bool) {
	return e.hold, e.hasHold
}

// HoldUsed reports whether hold was already used for the current piece.
func (e *Engine) HoldUsed() bool {
	return e.holdUsed
}

// Next returns up to n upcoming kinds.
func (e *Engine) Next(n int) []Kind {
	return e.queue.Peek(n)
}

// Progress returns score, level, lines, combo and back-to-back state.
func (e *Engine) Progress() Progress {
	return e.progress
}

// FallInterval returns the current gravity interval.
func (e *Engine) FallInterval() time.Duration {
	return e.fallInterval
}

// HighScore returns the all-time best including this round.
func (e *Engine) HighScore() int {
	return e.highScore
}

// GameOver reports whether the round has ended.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// LastClear returns the most recent scoring lock.
func (e *Engine) LastClear() ClearEvent {
	return e.lastClear
}

// Locks returns the number of pieces locked this round.
func (e *Engine) Locks() int {
	return e.locks
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() Settings {
	return e.settings
}
