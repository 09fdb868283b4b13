// Package config provides YAML-based configuration loading and difficulty
// presets for the tetris engine.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TetrisConfig contains all tunable parameters of a round.
type TetrisConfig struct {
	Speed   SpeedConfig `yaml:"speed"`
	Queue   QueueConfig `yaml:"queue"`
	Options Options     `yaml:"options"`
}

// SpeedConfig defines gravity and level progression.
type SpeedConfig struct {
	Difficulties    map[DifficultyPreset]float64 `yaml:"difficulties"`      // Base fall interval (seconds) per preset
	MinFallInterval float64                      `yaml:"min_fall_interval"` // Seconds
	LevelFactor     float64                      `yaml:"level_factor"`      // Interval multiplier per level
	LinesPerLevel   int                          `yaml:"lines_per_level"`
}

// QueueConfig defines the lookahead queue.
type QueueConfig struct {
	PreviewCount int `yaml:"preview_count"`
}

// Options are the player-facing settings chosen before a round starts.
type Options struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	ShowGhost  bool             `yaml:"show_ghost"`
}

// DefaultOptions returns the options a fresh install starts with.
func DefaultOptions() Options {
	return Options{
		Difficulty: DifficultyNormal,
		ShowGhost:  true,
	}
}

// BaseFallInterval returns the base fall interval for a difficulty preset.
// Unknown presets fall back to DefaultFallInterval.
func (c TetrisConfig) BaseFallInterval(preset DifficultyPreset) time.Duration {
	secs, ok := c.Speed.Difficulties[preset]
	if !ok || secs <= 0 {
		return DefaultFallInterval
	}
	return seconds(secs)
}

// MinFallInterval returns the fastest allowed fall interval.
func (c TetrisConfig) MinFallInterval() time.Duration {
	return seconds(c.Speed.MinFallInterval)
}

// Validate reports the first nonsensical value in the config.
func (c TetrisConfig) Validate() error {
	for preset, secs := range c.Speed.Difficulties {
		if secs <= 0 {
			return fmt.Errorf("config: difficulty %q: fall interval must be positive, got %v", preset, secs)
		}
	}
	if c.Speed.MinFallInterval <= 0 {
		return fmt.Errorf("config: min_fall_interval must be positive, got %v", c.Speed.MinFallInterval)
	}
	if c.Speed.LevelFactor <= 0 || c.Speed.LevelFactor > 1 {
		return fmt.Errorf("config: level_factor must be in (0, 1], got %v", c.Speed.LevelFactor)
	}
	if c.Speed.LinesPerLevel <= 0 {
		return fmt.Errorf("config: lines_per_level must be positive, got %d", c.Speed.LinesPerLevel)
	}
	if c.Queue.PreviewCount < 0 {
		return fmt.Errorf("config: preview_count must not be negative, got %d", c.Queue.PreviewCount)
	}
	if _, err := ParseDifficulty(string(c.Options.Difficulty)); err != nil {
		return fmt.Errorf("config: options: %w", err)
	}
	return nil
}

// YAML returns the config encoded as YAML.
func (c TetrisConfig) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return out, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
