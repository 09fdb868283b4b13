package storage

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxEntries caps the leaderboard.
const MaxEntries = 10

// DefaultInitials replaces initials that sanitize to nothing.
const DefaultInitials = "AAA"

const maxInitials = 3

// SanitizeInitials uppercases s, keeps ASCII letters and digits, and
// truncates to three characters.
func SanitizeInitials(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			if sb.Len() == maxInitials {
				break
			}
		}
	}
	if sb.Len() == 0 {
		return DefaultInitials
	}
	return sb.String()
}

// Normalize drops negative scores, sanitizes initials, sorts descending
// (stable), keeps the top MaxEntries and raises the high score to at least
// the top entry. Normalize(Normalize(r)) equals Normalize(r).
func Normalize(r Record) Record {
	entries := make([]Entry, 0, len(r.Leaderboard))
	for _, e := range r.Leaderboard {
		if e.Score < 0 {
			continue
		}
		entries = append(entries, Entry{
			Initials: SanitizeInitials(e.Initials),
			Score:    e.Score,
		})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	high := max(r.HighScore, 0)
	if len(entries) > 0 {
		high = max(high, entries[0].Score)
	}

	return Record{HighScore: high, Leaderboard: entries}
}

// coerceScore converts a persisted value to an integer score.
// Integral numbers, floats (truncated) and numeric strings are accepted;
// anything else, booleans included, is rejected.
func coerceScore(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32*1e6 {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	case []byte:
		return coerceScore(string(v))
	default:
		return 0, false
	}
}
