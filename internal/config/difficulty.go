package config

import (
	"errors"
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyExtreme DifficultyPreset = "extreme"
)

// ErrUnknownDifficulty is returned when a preset name is not recognized.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulties lists the presets in menu order.
func Difficulties() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme}
}

// ParseDifficulty converts a user-supplied name into a preset.
// Matching is case-insensitive.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	want := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range Difficulties() {
		if p == want {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected easy, normal, hard or extreme)", ErrUnknownDifficulty, name)
}

// Next returns the preset after p, wrapping around.
// Unknown presets continue from normal.
func (p DifficultyPreset) Next() DifficultyPreset {
	all := Difficulties()
	idx := 1
	for i, d := range all {
		if d == p {
			idx = i
			break
		}
	}
	return all[(idx+1)%len(all)]
}

// Label returns the capitalized display name.
func (p DifficultyPreset) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}
