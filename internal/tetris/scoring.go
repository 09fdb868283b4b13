package tetris

import (
	"math"
	"time"
)

// Line clear base points, multiplied by level.
var (
	lineClearPoints = [5]int{0, 100, 300, 500, 800}
	tSpinPoints     = [4]int{400, 800, 1200, 1600}
)

const (
	softDropPoints = 1 // per row
	hardDropPoints = 2 // per row
	comboPoints    = 50
)

// Progress is the scoring state of a round.
type Progress struct {
	Score int
	Level int
	Lines int
	// Combo counts consecutive clearing locks; -1 means no active combo.
	Combo      int
	BackToBack bool
}

// NewProgress returns the state at round start.
func NewProgress() Progress {
	return Progress{Level: 1, Combo: -1}
}

// ClearEvent describes what a single lock earned.
type ClearEvent struct {
	Rows       int
	TSpin      bool
	BackToBack bool // 1.5x bonus was applied
	Combo      int
	Points     int
}

// Name returns the HUD label of the event, e.g. "T-SPIN DOUBLE".
func (e ClearEvent) Name() string {
	names := [5]string{"", "SINGLE", "DOUBLE", "TRIPLE", "TETRIS"}
	name := ""
	if e.Rows >= 0 && e.Rows < len(names) {
		name = names[e.Rows]
	}
	if e.TSpin {
		if name == "" {
			return "T-SPIN"
		}
		return "T-SPIN " + name
	}
	return name
}

// Rules holds the level and gravity parameters of a round.
type Rules struct {
	LinesPerLevel    int
	BaseFallInterval time.Duration
	MinFallInterval  time.Duration
	LevelFactor      float64
}

// DefaultRules returns the normal difficulty rules.
func DefaultRules() Rules {
	return Rules{
		LinesPerLevel:    10,
		BaseFallInterval: 600 * time.Millisecond,
		MinFallInterval:  80 * time.Millisecond,
		LevelFactor:      0.85,
	}
}

// Apply returns the progress after a lock that cleared rows, and what the
// lock earned. It is a pure function of its arguments.
//
// T-spins score {0:400, 1:800, 2:1200, 3:1600} x level and any T-spin line
// clear sets back-to-back. Standard clears score {100, 300, 500, 800} x
// level and only a tetris keeps back-to-back alive. A lock without rows
// ends the combo.
func (r Rules) Apply(p Progress, rows int, tSpin bool) (Progress, ClearEvent) {
	ev := ClearEvent{Rows: rows, TSpin: tSpin}
	before := p.Score

	if tSpin {
		base := 0
		if rows >= 0 && rows < len(tSpinPoints) {
			base = tSpinPoints[rows] * p.Level
		}
		if rows > 0 && p.BackToBack {
			base = base * 3 / 2
			ev.BackToBack = true
		}
		p.Score += base

		if rows > 0 {
			p.Combo++
			if p.Combo > 0 {
				p.Score += comboPoints * p.Combo * p.Level
			}
			p.Lines += rows
		} else {
			p.Combo = -1
		}
		p.BackToBack = rows > 0
		p.Level = r.LevelFor(p.Lines)

		ev.Combo = p.Combo
		ev.Points = p.Score - before
		return p, ev
	}

	if rows <= 0 {
		p.Combo = -1
		p.BackToBack = false
		ev.Combo = p.Combo
		return p, ev
	}

	p.Combo++
	base := 0
	if rows < len(lineClearPoints) {
		base = lineClearPoints[rows] * p.Level
	}

	if rows == 4 {
		if p.BackToBack {
			base = base * 3 / 2
			ev.BackToBack = true
		}
		p.BackToBack = true
	} else {
		p.BackToBack = false
	}

	bonus := 0
	if p.Combo > 0 {
		bonus = comboPoints * p.Combo * p.Level
	}

	p.Score += base + bonus
	p.Lines += rows
	p.Level = r.LevelFor(p.Lines)

	ev.Combo = p.Combo
	ev.Points = p.Score - before
	return p, ev
}

// LevelFor returns the level reached after clearing lines in total.
func (r Rules) LevelFor(lines int) int {
	per := r.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return lines/per + 1
}

// FallInterval returns the gravity interval at the given level:
// base x factor^(level-1), never faster than the minimum.
func (r Rules) FallInterval(level int) time.Duration {
	scaled := float64(r.BaseFallInterval) * math.Pow(r.LevelFactor, float64(max(level, 1)-1))
	return max(time.Duration(scaled), r.MinFallInterval)
}
