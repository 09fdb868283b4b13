// Package storage persists the all-time high score and the top-10
// leaderboard. Two backends are available: a JSON document and a SQLite
// database, chosen by file extension.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Entry is one leaderboard row.
type Entry struct {
	Initials string
	Score    int
}

// Record is everything the store persists.
type Record struct {
	HighScore   int
	Leaderboard []Entry
}

// Backend reads and writes a raw record. Backends coerce field types and
// drop entries they cannot interpret; the Store normalizes the rest.
type Backend interface {
	Read() (Record, error)
	Write(r Record) error
	Close() error
}

// Store is the high score and leaderboard store. Every operation is a
// complete load-then-save unit, safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
	path    string
}

// Open opens the store at path, creating parent directories as needed.
// Paths ending in .db, .sqlite or .sqlite3 use SQLite; anything else is a
// JSON document. A leading ~ expands to the home directory.
func Open(path string, logger *log.Logger) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	var backend Backend
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		backend, err = OpenSQLite(path)
	default:
		backend = NewJSON(path)
	}
	if err != nil {
		return nil, err
	}

	s := New(backend, logger)
	s.path = path
	return s, nil
}

// New wraps an already opened backend. A nil logger discards output.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		backend: backend,
		logger:  logger.WithPrefix("storage"),
	}
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Path returns the file the store was opened on, if any.
func (s *Store) Path() string {
	return s.path
}

// Close releases the backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

// Load returns the normalized record. Read failures degrade to an empty
// record and are logged.
func (s *Store) Load() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save normalizes and writes r. Write failures are logged, not returned.
func (s *Store) Save(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(r)
}

// HighScore returns the all-time best.
func (s *Store) HighScore() int {
	return s.Load().HighScore
}

// Qualifies reports whether score would enter the leaderboard.
func (s *Store) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	board := s.Load().Leaderboard
	if len(board) < MaxEntries {
		return true
	}
	return score > board[MaxEntries-1].Score
}

// AddEntry records a finished round on the leaderboard and raises the high
// score if needed. Returns the 1-based rank of the new entry, or 0 if it
// did not place.
func (s *Store) AddEntry(initials string, score int) int {
	if score <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()

	// Stable ordering puts the new entry after any equal score.
	rank := 1
	for _, e := range r.Leaderboard {
		if e.Score >= score {
			rank++
		}
	}
	if rank > MaxEntries {
		return 0
	}

	r.Leaderboard = append(r.Leaderboard, Entry{Initials: initials, Score: score})
	s.save(r)

	s.logger.Info("leaderboard entry added", "initials", SanitizeInitials(initials), "score", score, "rank", rank)
	return rank
}

// SaveHighScore raises the stored all-time best to score if it is higher.
func (s *Store) SaveHighScore(score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	if score <= r.HighScore {
		return
	}
	r.HighScore = score
	s.save(r)
}

// Clear removes the leaderboard and the high score.
func (s *Store) Clear() {
	s.Save(Record{})
}

func (s *Store) load() Record {
	r, err := s.backend.Read()
	if err != nil {
		s.logger.Warn("cannot read scores, using defaults", "err", err)
	}
	return Normalize(r)
}

func (s *Store) save(r Record) {
	if err := s.backend.Write(Normalize(r)); err != nil {
		s.logger.Warn("cannot write scores", "err", err)
	}
}
