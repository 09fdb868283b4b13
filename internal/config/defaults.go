package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultFallInterval is used when a difficulty has no configured speed.
const DefaultFallInterval = 600 * time.Millisecond

// DefaultTetrisConfig returns the hardcoded default configuration.
// It matches defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Speed: SpeedConfig{
			Difficulties: map[DifficultyPreset]float64{
				DifficultyEasy:    0.80,
				DifficultyNormal:  0.60,
				DifficultyHard:    0.45,
				DifficultyExtreme: 0.30,
			},
			MinFallInterval: 0.08,
			LevelFactor:     0.85,
			LinesPerLevel:   10,
		},
		Queue: QueueConfig{
			PreviewCount: 5,
		},
		Options: DefaultOptions(),
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
