package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	blockRune = '█'
	ghostRune = '░'
)

// helpLines are shown in place of the one-line hint when help is toggled.
var helpLines = []string{
	"←→ A D  move",
	"↓ S     soft drop",
	"↑ X     rotate",
	"Space   hard drop",
	"C       hold",
	"P       pause",
	"?       help",
	"R       restart",
	"Q       quit",
}

// Render draws the round to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.Snapshot()

	ox := (g.screenW - MinScreenW) / 2
	oy := (g.screenH - MinScreenH) / 2
	wellX := ox + sideWidth + 1
	wellY := oy + hudHeight
	nextX := wellX + wellWidth + 1

	g.renderHUD(dst, snap, ox, oy)
	g.renderWell(dst, snap, wellX, wellY)
	g.renderHold(dst, snap, ox, wellY)
	g.renderStats(dst, snap, ox, wellY+7)
	g.renderNext(dst, snap, nextX, wellY)

	hint := "? help"
	if snap.ShowHelp {
		hint = ""
	}
	dst.DrawTextColor(wellX+(wellWidth-len(hint))/2, wellY+wellHeight, hint, core.ColorDim)

	g.renderOverlays(dst, snap, wellX, wellY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", MinScreenW, MinScreenH, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and score line.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot, ox, oy int) {
	hud := fmt.Sprintf("TETRIS  Score: %d  High: %d  Level: %d  Lines: %d",
		snap.Score, snap.HighScore, snap.Level, snap.Lines)
	x := ox + (MinScreenW-len([]rune(hud)))/2
	dst.DrawTextColor(max(x, 0), oy, hud, core.ColorText)
}

// renderWell draws the board border and its squares.
func (g *Game) renderWell(dst *core.Screen, snap Snapshot, wellX, wellY int) {
	dst.DrawBox(core.NewRect(wellX, wellY, wellWidth, wellHeight), core.ColorFrame)

	for y := range Height {
		for x := range Width {
			sq := snap.Grid[y][x]
			px := wellX + 1 + x*cellWidth
			py := wellY + 1 + y

			var cell core.Cell
			switch sq.State {
			case SquareLocked, SquareActive:
				cell = core.Cell{Rune: blockRune, Color: sq.Kind.Color()}
			case SquareGhost:
				cell = core.Cell{Rune: ghostRune, Color: core.ColorGhost}
			default:
				continue
			}
			dst.SetCell(px, py, cell)
			dst.SetCell(px+1, py, cell)
		}
	}
}

// renderHold draws the hold slot. A used hold is dimmed.
func (g *Game) renderHold(dst *core.Screen, snap Snapshot, x, y int) {
	dst.DrawBox(core.NewRect(x, y, sideWidth, 6), core.ColorFrame)
	dst.DrawText(x+2, y, " HOLD ")

	if !snap.HasHold {
		return
	}
	color := snap.Hold.Color()
	if snap.HoldUsed {
		color = core.ColorDim
	}
	drawPreview(dst, snap.Hold, x+1, y+2, sideWidth-2, color)
}

// renderStats draws the combo, back-to-back and last clear under the hold box.
func (g *Game) renderStats(dst *core.Screen, snap Snapshot, x, y int) {
	dst.DrawTextColor(x, y, fmt.Sprintf("Speed %.2fs", snap.FallInterval.Seconds()), core.ColorDim)

	if snap.Combo > 0 {
		dst.DrawTextColor(x, y+2, fmt.Sprintf("Combo x%d", snap.Combo), core.ColorCombo)
	}
	if snap.BackToBack {
		dst.DrawTextColor(x, y+3, "B2B", core.ColorB2B)
	}
	if name := snap.LastClear.Name(); name != "" {
		dst.DrawTextColor(x, y+5, name, core.ColorClear)
		if snap.LastClear.Points > 0 {
			dst.DrawText(x, y+6, fmt.Sprintf("+%d", snap.LastClear.Points))
		}
	}
}

// renderNext draws the preview queue, three rows per piece.
func (g *Game) renderNext(dst *core.Screen, snap Snapshot, x, y int) {
	h := len(snap.Next)*3 + 2
	dst.DrawBox(core.NewRect(x, y, sideWidth, h), core.ColorFrame)
	dst.DrawText(x+2, y, " NEXT ")

	for i, k := range snap.Next {
		drawPreview(dst, k, x+1, y+2+i*3, sideWidth-2, k.Color())
	}
}

// drawPreview draws kind k in its flattest rotation, centered within width
// columns starting at (x, y).
func drawPreview(dst *core.Screen, k Kind, x, y, width int, color core.Color) {
	shape := previewShape(k)
	minX, minY, maxX, _ := shape.Bounds()
	cols := (maxX - minX + 1) * cellWidth
	left := x + (width-cols)/2

	cell := core.Cell{Rune: blockRune, Color: color}
	for _, o := range shape {
		px := left + (o.DX-minX)*cellWidth
		py := y + o.DY - minY
		dst.SetCell(px, py, cell)
		dst.SetCell(px+1, py, cell)
	}
}

// previewShape returns the first rotation state with the fewest rows.
func previewShape(k Kind) Shape {
	best := k.Shape(0)
	_, minY, _, maxY := best.Bounds()
	bestH := maxY - minY
	for r := 1; r < k.Rotations(); r++ {
		s := k.Shape(r)
		_, minY, _, maxY := s.Bounds()
		if maxY-minY < bestH {
			best, bestH = s, maxY-minY
		}
	}
	return best
}

// renderOverlays draws help, pause and game over boxes over the well.
func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot, wellX, wellY int) {
	centerX := wellX + wellWidth/2
	centerY := wellY + wellHeight/2

	switch snap.State {
	case StateGameOver:
		drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			"R restart  Q quit")
		return
	case StatePaused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if snap.ShowHelp {
		drawOverlay(dst, centerX, centerY, helpLines...)
	}
}

// drawOverlay draws a boxed block of lines centered on (centerX, centerY).
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorText)

	for i, line := range lines {
		dst.DrawText(box.X+2, box.Y+1+i, line)
	}
}
