package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON stores the record as a single document:
//
//	{"high_score": 1200, "leaderboard": [{"initials": "ABC", "score": 1200}]}
//
// Reads are lenient: a bad entry is skipped without losing the others.
// Writes patch the existing document so unknown keys survive.
type JSON struct {
	path string
}

// NewJSON returns a backend for the document at path. The file is created
// on first write.
func NewJSON(path string) *JSON {
	return &JSON{path: path}
}

// Read parses the document. A missing file is an empty record.
func (j *JSON) Read() (Record, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("storage: cannot read %s: %w", j.path, err)
	}

	if !gjson.ValidBytes(data) {
		return Record{}, fmt.Errorf("storage: %s is not valid JSON", j.path)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Record{}, fmt.Errorf("storage: %s is not a JSON object", j.path)
	}

	var r Record
	if hs, ok := scoreFromJSON(root.Get("high_score")); ok {
		r.HighScore = hs
	}

	board := root.Get("leaderboard")
	if !board.IsArray() {
		return r, nil
	}
	board.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		score, ok := scoreFromJSON(v.Get("score"))
		if !ok {
			return true
		}
		r.Leaderboard = append(r.Leaderboard, Entry{
			Initials: v.Get("initials").String(),
			Score:    score,
		})
		return true
	})
	return r, nil
}

// Write stores r, keeping keys of the existing document it does not own.
func (j *JSON) Write(r Record) error {
	doc := []byte(`{}`)
	if data, err := os.ReadFile(j.path); err == nil && gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject() {
		doc = data
	}

	doc, err := sjson.SetBytes(doc, "high_score", r.HighScore)
	if err != nil {
		return fmt.Errorf("storage: cannot set high_score: %w", err)
	}
	doc, err = sjson.SetRawBytes(doc, "leaderboard", []byte(`[]`))
	if err != nil {
		return fmt.Errorf("storage: cannot reset leaderboard: %w", err)
	}
	for i, e := range r.Leaderboard {
		prefix := "leaderboard." + strconv.Itoa(i)
		if doc, err = sjson.SetBytes(doc, prefix+".initials", e.Initials); err != nil {
			return fmt.Errorf("storage: cannot set entry %d: %w", i, err)
		}
		if doc, err = sjson.SetBytes(doc, prefix+".score", e.Score); err != nil {
			return fmt.Errorf("storage: cannot set entry %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err == nil {
		doc = buf.Bytes()
	}

	return writeFileAtomic(j.path, doc)
}

// Close is a no-op; the document is opened per operation.
func (j *JSON) Close() error {
	return nil
}

// scoreFromJSON coerces a JSON value to a score.
func scoreFromJSON(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if n, err := strconv.Atoi(v.Raw); err == nil {
			return n, true
		}
		return coerceScore(v.Num)
	case gjson.String:
		return coerceScore(v.Str)
	default:
		return 0, false
	}
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", path, err)
	}
	return nil
}
