package tetris

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Cell is the state of one board square. The zero value is empty; a filled
// cell remembers the kind that locked into it for coloring.
type Cell uint8

// CellEmpty is an unoccupied square.
const CellEmpty Cell = 0

// FilledCell returns the cell value for a square filled by kind k.
func FilledCell(k Kind) Cell {
	return Cell(k) + 1
}

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool {
	return c != CellEmpty
}

// Kind returns the kind that filled the cell. Only meaningful if Filled.
func (c Cell) Kind() Kind {
	return Kind(c - 1)
}

// Board is the playfield, indexed [row][column] with row 0 at the top.
type Board [Height][Width]Cell

// InBounds reports whether (x, y) lies on the visible grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the cell at (x, y), or CellEmpty off-grid.
func (b *Board) At(x, y int) Cell {
	if !InBounds(x, y) {
		return CellEmpty
	}
	return b[y][x]
}

// Collides reports whether p, shifted by (dx, dy) and turned to rotation,
// would leave the well horizontally, pass the floor, or overlap a filled
// cell. Rows above the top are passable.
func (b *Board) Collides(p Piece, dx, dy, rotation int) bool {
	for _, o := range p.Kind.Shape(rotation) {
		x := p.X + o.DX + dx
		y := p.Y + o.DY + dy
		if x < 0 || x >= Width || y >= Height {
			return true
		}
		if y >= 0 && b[y][x].Filled() {
			return true
		}
	}
	return false
}

// Lock stamps the piece's current cells onto the board.
// Cells above the top row are dropped.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Cells() {
		if InBounds(c.X, c.Y) {
			b[c.Y][c.X] = FilledCell(p.Kind)
		}
	}
}

// Occupied reports whether (x, y) counts as blocked for corner tests:
// outside the side walls, at or below the floor, or a filled cell.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || x >= Width || y >= Height {
		return true
	}
	return y >= 0 && b[y][x].Filled()
}

// RowFull reports whether row y has no empty cell.
func (b *Board) RowFull(y int) bool {
	for _, c := range b[y] {
		if !c.Filled() {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the rest down keeping their
// order, and refills the top with empty rows. Returns the number removed.
func (b *Board) ClearFullRows() int {
	write := Height - 1
	for read := Height - 1; read >= 0; read-- {
		if b.RowFull(read) {
			continue
		}
		if write != read {
			b[write] = b[read]
		}
		write--
	}

	cleared := write + 1
	for y := 0; y < cleared; y++ {
		b[y] = [Width]Cell{}
	}
	return cleared
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for y := range Height {
		for x := range Width {
			if b[y][x].Filled() {
				n++
			}
		}
	}
	return n
}
