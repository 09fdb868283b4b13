package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const highScoreKey = "high_score"

// SQLite stores the record in two tables: meta(key, value) for the high
// score and leaderboard(position, initials, score).
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return s, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS leaderboard (
			position INTEGER PRIMARY KEY,
			initials TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Read loads the high score and the leaderboard rows in position order.
// Rows whose score cannot be read as an integer are skipped.
func (s *SQLite) Read() (Record, error) {
	var r Record

	var raw string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", highScoreKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return r, fmt.Errorf("storage: cannot query high score: %w", err)
	default:
		if hs, ok := coerceScore(raw); ok {
			r.HighScore = hs
		}
	}

	rows, err := s.db.Query("SELECT initials, score FROM leaderboard ORDER BY position")
	if err != nil {
		return r, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var initials sql.NullString
		var score any
		if err := rows.Scan(&initials, &score); err != nil {
			return r, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		n, ok := coerceScore(score)
		if !ok {
			continue
		}
		r.Leaderboard = append(r.Leaderboard, Entry{Initials: initials.String, Score: n})
	}

	if err := rows.Err(); err != nil {
		return r, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return r, nil
}

// Write replaces the stored record in a single transaction.
func (s *SQLite) Write(r Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		highScoreKey, strconv.Itoa(r.HighScore),
	); err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	for i, e := range r.Leaderboard {
		if _, err := tx.Exec(
			"INSERT INTO leaderboard (position, initials, score) VALUES (?, ?, ?)",
			i+1, e.Initials, e.Score,
		); err != nil {
			return fmt.Errorf("storage: cannot save entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
