package core

import "testing"

func TestColorCode(t *testing.T) {
	if code := ColorDefault.Code(); code != "" {
		t.Errorf("ColorDefault.Code() = %q, want empty", code)
	}
	if code := Color(200).Code(); code != "" {
		t.Errorf("out of range Code() = %q, want empty", code)
	}
	if code := ColorOrange.Code(); code != "208" {
		t.Errorf("ColorOrange.Code() = %q, want 208", code)
	}
}

func TestPalette(t *testing.T) {
	seen := make(map[string]Color)
	for _, c := range Palette() {
		code := c.Code()
		if code == "" {
			t.Errorf("color %d has no code", c)
			continue
		}
		if prev, ok := seen[code]; ok {
			t.Errorf("colors %d and %d share code %s", prev, c, code)
		}
		seen[code] = c
	}
	if len(seen) != int(colorCount)-1 {
		t.Errorf("palette has %d colors, want %d", len(seen), colorCount-1)
	}
}

func TestColorRoles(t *testing.T) {
	for name, c := range map[string]Color{
		"ghost": ColorGhost,
		"frame": ColorFrame,
		"text":  ColorText,
		"combo": ColorCombo,
		"b2b":   ColorB2B,
		"clear": ColorClear,
	} {
		if c == ColorDefault {
			t.Errorf("%s role should be drawn in a palette color", name)
		}
	}
	if ColorGhost == ColorText {
		t.Error("ghost must be distinguishable from text")
	}
}
