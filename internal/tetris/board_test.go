package tetris

import "testing"

// fillRow fills row y except for the listed columns.
func fillRow(b *Board, y int, holes ...int) {
	for x := range Width {
		b[y][x] = FilledCell(KindO)
	}
	for _, x := range holes {
		b[y][x] = CellEmpty
	}
}

func TestBoardCollides(t *testing.T) {
	var b Board
	b[19][4] = FilledCell(KindZ)

	tests := []struct {
		name   string
		piece  Piece
		dx, dy int
		want   bool
	}{
		{"spawn on empty board", NewPiece(KindT), 0, 0, false},
		{"past left wall", Piece{Kind: KindO, X: 0, Y: 5}, -1, 0, true},
		{"past right wall", Piece{Kind: KindO, X: Width - 2, Y: 5}, 1, 0, true},
		{"against right wall", Piece{Kind: KindO, X: Width - 2, Y: 5}, 0, 0, false},
		{"through floor", Piece{Kind: KindO, X: 0, Y: Height - 2}, 0, 1, true},
		{"on filled cell", Piece{Kind: KindO, X: 3, Y: 17}, 0, 1, true},
		{"above top is passable", Piece{Kind: KindI, X: 0, Y: 0}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Collides(tt.piece, tt.dx, tt.dy, tt.piece.Rotation); got != tt.want {
				t.Errorf("Collides() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoardLockSkipsOffGrid(t *testing.T) {
	var b Board
	// Rotation 0 of I spans rows -1..2.
	b.Lock(Piece{Kind: KindI, X: 3, Y: 0})

	if got := b.FilledCount(); got != 3 {
		t.Fatalf("FilledCount() = %d, want 3", got)
	}
	for y := range 3 {
		if c := b.At(3, y); !c.Filled() || c.Kind() != KindI {
			t.Errorf("cell (3,%d) = %v, want filled by I", y, c)
		}
	}
}

func TestBoardClearFullRows(t *testing.T) {
	var b Board
	fillRow(&b, 19)
	fillRow(&b, 18, 0) // survivor with a hole
	fillRow(&b, 17)
	b[16][5] = FilledCell(KindT)

	before := b.FilledCount()
	cleared := b.ClearFullRows()

	if cleared != 2 {
		t.Fatalf("ClearFullRows() = %d, want 2", cleared)
	}
	if got, want := b.FilledCount(), before-2*Width; got != want {
		t.Errorf("FilledCount() = %d, want %d", got, want)
	}

	// Surviving rows keep their order and drop to the bottom.
	if b.At(0, 19).Filled() || !b.At(1, 19).Filled() {
		t.Error("row with hole should be at the bottom")
	}
	if c := b.At(5, 18); !c.Filled() || c.Kind() != KindT {
		t.Error("T cell should sit above the surviving row")
	}
	for y := range 18 {
		for x := range Width {
			if b.At(x, y).Filled() {
				t.Fatalf("cell (%d,%d) should be empty after clear", x, y)
			}
		}
	}
}

func TestBoardClearNothing(t *testing.T) {
	var b Board
	fillRow(&b, 19, 9)
	snapshot := b

	if cleared := b.ClearFullRows(); cleared != 0 {
		t.Errorf("ClearFullRows() = %d, want 0", cleared)
	}
	if b != snapshot {
		t.Error("board should be unchanged when no row is full")
	}
}

func TestBoardOccupied(t *testing.T) {
	var b Board
	b[10][4] = FilledCell(KindS)

	tests := []struct {
		x, y int
		want bool
	}{
		{-1, 5, true},
		{Width, 5, true},
		{3, Height, true},
		{4, 10, true},
		{5, 10, false},
		{4, -1, false},
	}

	for _, tt := range tests {
		if got := b.Occupied(tt.x, tt.y); got != tt.want {
			t.Errorf("Occupied(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
