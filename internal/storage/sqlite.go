// Package storage provides SQLite-based persistence for frame-timing
// profiles. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for profile persistence.
type Store struct {
	db *sql.DB
}

// Profile is the frame-timing summary of one session.
type Profile struct {
	ID        int64
	Session   string  // Session label, e.g. "local" or an SSH user
	FPS       int     // Frames in the last full second
	UPS       int     // Sub-steps in the last full second
	AvgFrame  float64 // Mean frame time over the ring, seconds
	MaxFrame  float64 // Longest frame time over the ring, seconds
	Frames    int64   // Total host frames
	BestScore int     // Best score reached in the session
	CreatedAt time.Time
}

const timeLayout = "2006-01-02 15:04:05"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			fps INTEGER NOT NULL DEFAULT 0,
			ups INTEGER NOT NULL DEFAULT 0,
			avg_frame REAL NOT NULL DEFAULT 0,
			max_frame REAL NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_profiles_session ON profiles(session);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProfile records a profile and returns the ID of the inserted row.
func (s *Store) SaveProfile(ctx context.Context, p Profile) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (session, fps, ups, avg_frame, max_frame, frames, best_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Session, p.FPS, p.UPS, p.AvgFrame, p.MaxFrame, p.Frames, p.BestScore,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ListProfiles returns the most recent profiles, newest first. An empty
// session lists every session.
func (s *Store) ListProfiles(ctx context.Context, session string, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, fps, ups, avg_frame, max_frame, frames, best_score, created_at
		 FROM profiles
		 WHERE ? = '' OR session = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		session, session, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Session, &p.FPS, &p.UPS, &p.AvgFrame, &p.MaxFrame,
			&p.Frames, &p.BestScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// BestScore returns the highest score recorded across all profiles.
// Returns 0 if no profiles exist.
func (s *Store) BestScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(best_score) FROM profiles").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearProfiles deletes every profile of session, or all when session is
// empty.
func (s *Store) ClearProfiles(ctx context.Context, session string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE ? = '' OR session = ?", session, session)
	if err != nil {
		return fmt.Errorf("storage: cannot clear profiles: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
