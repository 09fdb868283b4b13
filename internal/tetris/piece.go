package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// SpawnX and SpawnY are the anchor of a freshly spawned piece:
// horizontally centered, one row below the top.
const (
	SpawnX = Width / 2
	SpawnY = 1
)

// Piece is the falling tetromino.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int // Anchor in board coordinates
	// Rotated is true when the last successful action was a rotation.
	// It drives T-spin detection.
	Rotated bool
}

// NewPiece returns kind k at the spawn position in rotation 0.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, X: SpawnX, Y: SpawnY}
}

// Cells returns the absolute board coordinates of the piece.
func (p Piece) Cells() [4]core.Point {
	return p.CellsAt(0, 0, p.Rotation)
}

// CellsAt returns the coordinates the piece would occupy shifted by
// (dx, dy) in the given rotation.
func (p Piece) CellsAt(dx, dy, rotation int) [4]core.Point {
	var out [4]core.Point
	for i, o := range p.Kind.Shape(rotation) {
		out[i] = core.Point{X: p.X + o.DX + dx, Y: p.Y + o.DY + dy}
	}
	return out
}
