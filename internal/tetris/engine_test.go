package tetris

import (
	"math/rand"
	"testing"
)

// recordingSaver collects every persisted high score.
type recordingSaver struct {
	saved []int
}

func (r *recordingSaver) SaveHighScore(score int) {
	r.saved = append(r.saved, score)
}

func newTestEngine(seed int64) *Engine {
	settings := DefaultSettings()
	settings.Seed = seed
	return NewEngine(settings, nil)
}

func TestEngineSpawn(t *testing.T) {
	e := newTestEngine(1)

	p := e.Piece()
	if p.X != SpawnX || p.Y != SpawnY || p.Rotation != 0 {
		t.Errorf("spawned piece at (%d,%d) rot %d, want (%d,%d) rot 0", p.X, p.Y, p.Rotation, SpawnX, SpawnY)
	}
	if got := len(e.Next(5)); got != 5 {
		t.Errorf("Next(5) returned %d kinds", got)
	}
	if e.GameOver() {
		t.Error("fresh engine should not be over")
	}
	if pr := e.Progress(); pr.Level != 1 || pr.Combo != -1 || pr.Score != 0 {
		t.Errorf("fresh progress = %+v", pr)
	}
}

func TestEngineSameSeedSameQueue(t *testing.T) {
	e1 := newTestEngine(2024)
	e2 := newTestEngine(2024)

	for i := range 30 {
		if e1.Piece().Kind != e2.Piece().Kind {
			t.Fatalf("piece %d differs: %s vs %s", i, e1.Piece().Kind, e2.Piece().Kind)
		}
		e1.HardDrop()
		e2.HardDrop()
	}
}

func TestEngineMove(t *testing.T) {
	e := newTestEngine(3)
	start := e.Piece()

	if !e.Move(-1, 0, false) {
		t.Fatal("move left on empty board should succeed")
	}
	if e.Piece().X != start.X-1 {
		t.Errorf("X = %d, want %d", e.Piece().X, start.X-1)
	}

	if !e.Move(0, 1, true) {
		t.Fatal("soft drop should succeed")
	}
	if e.Progress().Score != 1 {
		t.Errorf("soft drop score = %d, want 1", e.Progress().Score)
	}

	for e.Move(-1, 0, false) {
	}
	x := e.Piece().X
	if e.Move(-1, 0, false) || e.Piece().X != x {
		t.Error("blocked horizontal move should be a no-op")
	}
}

func TestEngineHardDrop(t *testing.T) {
	e := newTestEngine(4)
	kind := e.Piece().Kind
	ghost := e.GhostY()
	distance := ghost - e.Piece().Y

	if got := e.HardDrop(); got != distance {
		t.Errorf("HardDrop() = %d, want %d", got, distance)
	}
	if e.Progress().Score != 2*distance {
		t.Errorf("Score = %d, want %d", e.Progress().Score, 2*distance)
	}
	if e.Locks() != 1 {
		t.Errorf("Locks() = %d, want 1", e.Locks())
	}

	board := e.Board()
	if board.FilledCount() != 4 {
		t.Errorf("FilledCount() = %d, want 4", board.FilledCount())
	}
	found := false
	for x := range Width {
		if c := board.At(x, Height-1); c.Filled() && c.Kind() == kind {
			found = true
		}
	}
	if !found {
		t.Errorf("dropped %s should rest on the floor", kind)
	}
}

func TestEngineBlockedFallLocks(t *testing.T) {
	e := newTestEngine(5)
	e.piece = Piece{Kind: KindO, X: 0, Y: Height - 2}

	if e.Move(0, 1, false) {
		t.Fatal("move through the floor should fail")
	}
	if !e.board.At(0, Height-1).Filled() || !e.board.At(1, Height-2).Filled() {
		t.Error("blocked downward move should lock the piece")
	}
	if e.Piece().Y != SpawnY {
		t.Error("a new piece should spawn after locking")
	}
}

func TestEngineRotateKicksOffWall(t *testing.T) {
	e := newTestEngine(6)
	e.piece = NewPiece(KindI)
	e.piece.Y = 5
	for e.Move(-1, 0, false) {
	}
	if e.Piece().X != 0 {
		t.Fatalf("vertical I should reach column 0, at %d", e.Piece().X)
	}

	if !e.Rotate() {
		t.Fatal("rotation next to the wall should kick")
	}
	p := e.Piece()
	if p.Rotation != 1 || p.X != 1 {
		t.Errorf("after kick rot %d X %d, want rot 1 X 1", p.Rotation, p.X)
	}
	if !p.Rotated {
		t.Error("rotation flag should be set")
	}

	e.Move(0, 1, false)
	if e.Piece().Rotated {
		t.Error("successful move should clear the rotation flag")
	}
}

func TestEngineRotateRejected(t *testing.T) {
	e := newTestEngine(7)
	// A vertical I in a one-wide shaft cannot turn horizontal.
	for y := 3; y < Height; y++ {
		fillRow(&e.board, y, 4)
	}
	e.piece = Piece{Kind: KindI, X: 4, Y: 5}
	before := e.Piece()

	if e.Rotate() {
		t.Fatal("rotation should be rejected")
	}
	if e.Piece() != before {
		t.Error("rejected rotation should leave the piece untouched")
	}
}

func TestEngineCommandsNeverOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	e := newTestEngine(11)

	for step := range 5000 {
		if e.GameOver() {
			e.Reset(int64(step))
		}

		switch rng.Intn(6) {
		case 0:
			e.Move(-1, 0, false)
		case 1:
			e.Move(1, 0, false)
		case 2:
			e.Move(0, 1, true)
		case 3:
			e.Rotate()
		case 4:
			if rng.Intn(4) == 0 {
				e.HardDrop()
			}
		case 5:
			e.Hold()
		}

		if e.GameOver() {
			continue
		}
		p := e.Piece()
		if e.board.Collides(p, 0, 0, p.Rotation) {
			t.Fatalf("step %d: piece %+v overlaps the board", step, p)
		}
		for y := range Height {
			if e.board.RowFull(y) {
				t.Fatalf("step %d: full row %d left on the board", step, y)
			}
		}
	}
}

func TestEngineHoldOncePerSpawn(t *testing.T) {
	e := newTestEngine(8)
	first := e.Piece().Kind
	next := e.Next(1)[0]

	if !e.Hold() {
		t.Fatal("first hold should succeed")
	}
	if held, ok := e.Held(); !ok || held != first {
		t.Errorf("Held() = %s,%v, want %s,true", held, ok, first)
	}
	if e.Piece().Kind != next {
		t.Errorf("piece after hold = %s, want %s from the queue", e.Piece().Kind, next)
	}
	if e.Hold() {
		t.Error("second hold before locking should be rejected")
	}

	e.HardDrop()
	current := e.Piece().Kind
	if !e.Hold() {
		t.Fatal("hold after a new spawn should succeed")
	}
	if e.Piece().Kind != first {
		t.Errorf("swapped piece = %s, want %s", e.Piece().Kind, first)
	}
	if held, _ := e.Held(); held != current {
		t.Errorf("held = %s, want %s", held, current)
	}
	p := e.Piece()
	if p.X != SpawnX || p.Y != SpawnY || p.Rotation != 0 {
		t.Error("swapped piece should start at the spawn position")
	}
}

func TestEngineHoldSwapIntoBlockedSpawn(t *testing.T) {
	e := newTestEngine(10)
	if !e.Hold() {
		t.Fatal("first hold should succeed")
	}
	e.HardDrop()

	for y := range 3 {
		fillRow(&e.board, y)
	}
	board := e.Board()
	progress := e.Progress()

	if !e.Hold() {
		t.Fatal("swap should happen even when the held piece is blocked")
	}
	if !e.GameOver() {
		t.Fatal("a held piece that cannot spawn should end the round")
	}

	if e.Move(-1, 0, false) {
		t.Error("Move accepted after game over")
	}
	if e.Rotate() {
		t.Error("Rotate accepted after game over")
	}
	if e.Hold() {
		t.Error("Hold accepted after game over")
	}
	if d := e.HardDrop(); d != 0 {
		t.Errorf("HardDrop() = %d after game over, want 0", d)
	}
	if e.Board() != board {
		t.Error("board changed after game over")
	}
	if e.Progress() != progress {
		t.Errorf("progress = %+v, want %+v", e.Progress(), progress)
	}
}

func TestEngineGameOverLatch(t *testing.T) {
	e := newTestEngine(9)
	for y := range Height {
		fillRow(&e.board, y, y%Width)
	}
	e.spawn()

	if !e.GameOver() {
		t.Fatal("spawn into a filled well should end the round")
	}

	piece := e.Piece()
	progress := e.Progress()
	board := e.Board()

	if e.Move(1, 0, false) || e.Move(0, 1, true) || e.Rotate() || e.Hold() || e.HardDrop() != 0 {
		t.Error("commands should be rejected after game over")
	}
	if e.Piece() != piece || e.Progress() != progress || e.Board() != board {
		t.Error("state should not change after game over")
	}

	e.Reset(10)
	if e.GameOver() {
		t.Error("Reset should start a playable round")
	}
}

func TestEngineTSpinDetection(t *testing.T) {
	e := newTestEngine(12)
	e.piece = Piece{Kind: KindT, X: 4, Y: 18, Rotated: true}
	e.board[17][3] = FilledCell(KindO)
	e.board[17][5] = FilledCell(KindO)
	e.board[19][3] = FilledCell(KindO)

	if !e.isTSpin() {
		t.Error("three blocked corners after rotation should be a T-spin")
	}

	e.piece.Rotated = false
	if e.isTSpin() {
		t.Error("T-spin requires the last action to be a rotation")
	}

	e.piece.Rotated = true
	e.board[17][5] = CellEmpty
	if e.isTSpin() {
		t.Error("two corners should not be a T-spin")
	}

	e.piece.Kind = KindL
	e.board[17][5] = FilledCell(KindO)
	if e.isTSpin() {
		t.Error("only T pieces can T-spin")
	}
}

func TestEngineTSpinSingleScores(t *testing.T) {
	e := newTestEngine(13)
	fillRow(&e.board, 19, 4)
	e.board[17][3] = FilledCell(KindO)
	e.piece = Piece{Kind: KindT, X: 4, Y: 18, Rotated: true}

	e.Move(0, 1, false)

	p := e.Progress()
	if p.Score != 800 {
		t.Errorf("Score = %d, want 800", p.Score)
	}
	if p.Lines != 1 || !p.BackToBack {
		t.Errorf("Lines %d BackToBack %v, want 1 true", p.Lines, p.BackToBack)
	}
	if name := e.LastClear().Name(); name != "T-SPIN SINGLE" {
		t.Errorf("LastClear = %q, want T-SPIN SINGLE", name)
	}
}

func TestEngineLevelSpeedsUpGravity(t *testing.T) {
	e := newTestEngine(14)
	base := e.FallInterval()
	e.progress.Lines = 9

	fillRow(&e.board, 19, 0)
	e.piece = Piece{Kind: KindI, X: 0, Y: 16}
	e.HardDrop()

	if e.Progress().Level != 2 {
		t.Fatalf("Level = %d, want 2", e.Progress().Level)
	}
	if e.FallInterval() >= base {
		t.Errorf("FallInterval %v should drop below %v", e.FallInterval(), base)
	}
}

func TestEngineHighScoreHook(t *testing.T) {
	saver := &recordingSaver{}
	settings := DefaultSettings()
	settings.Seed = 15
	settings.HighScore = 10
	e := NewEngine(settings, saver)

	for i := range 6 {
		e.Move(0, 1, true)
		if i < 4 && len(saver.saved) != 0 {
			t.Fatalf("saved %v before beating the high score", saver.saved)
		}
	}
	e.HardDrop()

	if len(saver.saved) == 0 {
		t.Fatal("beating the high score should persist it")
	}
	for i := 1; i < len(saver.saved); i++ {
		if saver.saved[i] <= saver.saved[i-1] {
			t.Errorf("persisted scores should increase: %v", saver.saved)
		}
	}
	last := saver.saved[len(saver.saved)-1]
	if last != e.Progress().Score || e.HighScore() != last {
		t.Errorf("last saved %d, score %d, high %d", last, e.Progress().Score, e.HighScore())
	}

	e.Reset(16)
	if e.HighScore() != last {
		t.Error("high score should carry across Reset")
	}
}

func TestEngineGhostY(t *testing.T) {
	e := newTestEngine(17)
	e.piece = Piece{Kind: KindO, X: 2, Y: 1}
	e.board[15][3] = FilledCell(KindJ)

	if got := e.GhostY(); got != 13 {
		t.Errorf("GhostY() = %d, want 13", got)
	}
}
