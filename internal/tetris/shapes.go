// Package tetris implements the falling-block engine: shape catalog, bag
// randomizer, board, active piece state machine, scoring and rendering.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// Offset is a cell position relative to the piece anchor. Y grows downward.
type Offset struct {
	DX, DY int
}

// Shape is one rotation state: exactly four cell offsets.
type Shape [4]Offset

// shapes maps kind -> rotation index -> cells. Read-only.
var shapes = [KindCount][]Shape{
	KindI: {
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{1, -1}, {1, 0}, {1, 1}, {1, 2}},
		{{-1, 1}, {0, 1}, {1, 1}, {2, 1}},
	},
	KindO: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	KindT: {
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, -1}, {0, 0}, {1, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, -1}},
		{{0, -1}, {0, 0}, {-1, 0}, {0, 1}},
	},
	KindS: {
		{{0, 0}, {1, 0}, {0, 1}, {-1, 1}},
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
	},
	KindZ: {
		{{0, 0}, {-1, 0}, {0, 1}, {1, 1}},
		{{0, -1}, {0, 0}, {-1, 0}, {-1, 1}},
	},
	KindJ: {
		{{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {2, 0}},
		{{0, -1}, {1, -1}, {1, 0}, {1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, -1}},
	},
	KindL: {
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
		{{0, -1}, {1, -1}, {1, 0}, {1, 1}},
		{{-1, 1}, {0, 1}, {1, 1}, {1, 0}},
	},
}

var kindNames = [KindCount]string{"I", "O", "T", "S", "Z", "J", "L"}

var kindColors = [KindCount]core.Color{
	KindI: core.ColorCyan,
	KindO: core.ColorYellow,
	KindT: core.ColorPurple,
	KindS: core.ColorGreen,
	KindZ: core.ColorRed,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
}

// AllKinds returns every kind in catalog order.
func AllKinds() [KindCount]Kind {
	return [KindCount]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return kindNames[k]
}

// Color returns the display color for the kind.
func (k Kind) Color() core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return kindColors[k]
}

// Rotations returns the number of rotation states of the kind.
func (k Kind) Rotations() int {
	return len(shapes[k])
}

// Shape returns the cells of the given rotation. The index wraps.
func (k Kind) Shape(rotation int) Shape {
	states := shapes[k]
	n := len(states)
	return states[((rotation%n)+n)%n]
}

// Bounds returns the inclusive min/max offsets of a rotation state.
func (s Shape) Bounds() (minX, minY, maxX, maxY int) {
	minX, minY = s[0].DX, s[0].DY
	maxX, maxY = minX, minY
	for _, o := range s[1:] {
		minX = min(minX, o.DX)
		minY = min(minY, o.DY)
		maxX = max(maxX, o.DX)
		maxY = max(maxY, o.DY)
	}
	return minX, minY, maxX, maxY
}
