// Package storage provides SQLite-based persistence for level progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gravity-sling/internal/sling"
)

// LocalPlayer is the player name used for local play.
const LocalPlayer = "local"

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Best is the best-of record of one player on one level.
type Best struct {
	Player    string
	Pack      string
	LevelID   int
	Score     int
	Stars     int
	TimeSec   int     // time of the best-scoring run
	Fuel      float64 // fuel left on the best-scoring run
	Completed bool
	UpdatedAt time.Time
}

// Run is a single won run.
type Run struct {
	ID        int64
	Player    string
	Pack      string
	LevelID   int
	Score     int
	Stars     int
	TimeSec   int
	Fuel      float64
	CreatedAt time.Time
}

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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS level_progress (
			player TEXT NOT NULL,
			pack TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			time_sec INTEGER NOT NULL DEFAULT 0,
			fuel REAL NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, pack, level_id)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			pack TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			score INTEGER NOT NULL,
			stars INTEGER NOT NULL,
			time_sec INTEGER NOT NULL,
			fuel REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(player, pack, level_id);
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

// RecordWin stores a won run and improves the player's best-of record.
// Score and stars only ever go up; time and fuel follow the best-scoring
// run, with ties going to the newer run. Returns the resulting record.
func (s *Store) RecordWin(player, pack string, res sling.Result) (Best, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Best{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO runs (player, pack, level_id, score, stars, time_sec, fuel)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		player, pack, res.LevelID, res.Score, res.Stars, res.ElapsedSeconds, res.Fuel,
	)
	if err != nil {
		return Best{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	prev, err := scanBest(tx.QueryRow(
		`SELECT player, pack, level_id, score, stars, time_sec, fuel, completed, updated_at
		 FROM level_progress
		 WHERE player = ? AND pack = ? AND level_id = ?`,
		player, pack, res.LevelID,
	))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Best{}, fmt.Errorf("storage: cannot query progress: %w", err)
	}

	best := Best{
		Player:    player,
		Pack:      pack,
		LevelID:   res.LevelID,
		Score:     max(prev.Score, res.Score),
		Stars:     max(prev.Stars, res.Stars),
		TimeSec:   res.ElapsedSeconds,
		Fuel:      res.Fuel,
		Completed: true,
		UpdatedAt: time.Now().UTC(),
	}
	if prev.Score > res.Score {
		best.TimeSec = prev.TimeSec
		best.Fuel = prev.Fuel
	}

	_, err = tx.Exec(
		`INSERT INTO level_progress (player, pack, level_id, score, stars, time_sec, fuel, completed, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)
		 ON CONFLICT (player, pack, level_id) DO UPDATE SET
			score = excluded.score,
			stars = excluded.stars,
			time_sec = excluded.time_sec,
			fuel = excluded.fuel,
			completed = 1,
			updated_at = excluded.updated_at`,
		player, pack, best.LevelID, best.Score, best.Stars, best.TimeSec, best.Fuel,
		best.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return Best{}, fmt.Errorf("storage: cannot save progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Best{}, fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return best, nil
}

// Best returns the player's record on a level, or nil if it was never won.
func (s *Store) Best(player, pack string, levelID int) (*Best, error) {
	b, err := scanBest(s.db.QueryRow(
		`SELECT player, pack, level_id, score, stars, time_sec, fuel, completed, updated_at
		 FROM level_progress
		 WHERE player = ? AND pack = ? AND level_id = ?`,
		player, pack, levelID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return &b, nil
}

// AllBest returns every record of the player in a pack, keyed by level ID.
func (s *Store) AllBest(player, pack string) (map[int]Best, error) {
	rows, err := s.db.Query(
		`SELECT player, pack, level_id, score, stars, time_sec, fuel, completed, updated_at
		 FROM level_progress
		 WHERE player = ? AND pack = ?`,
		player, pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	result := make(map[int]Best)
	for rows.Next() {
		b, err := scanBest(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		result[b.LevelID] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// RecentRuns returns the latest won runs on a level, newest first.
func (s *Store) RecentRuns(player, pack string, levelID, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, pack, level_id, score, stars, time_sec, fuel, created_at
		 FROM runs
		 WHERE player = ? AND pack = ? AND level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, pack, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Pack, &r.LevelID, &r.Score, &r.Stars, &r.TimeSec, &r.Fuel, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// TotalStars sums the best stars of the player in a pack.
func (s *Store) TotalStars(player, pack string) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		"SELECT SUM(stars) FROM level_progress WHERE player = ? AND pack = ?",
		player, pack,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query stars: %w", err)
	}

	if !total.Valid {
		return 0, nil
	}

	return int(total.Int64), nil
}

// ResetProgress deletes the player's records and runs in a pack.
func (s *Store) ResetProgress(player, pack string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM level_progress WHERE player = ? AND pack = ?", player, pack); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE player = ? AND pack = ?", player, pack); err != nil {
		return fmt.Errorf("storage: cannot reset runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

// Stats contains aggregated progress of a player in a pack.
type Stats struct {
	Player     string
	Pack       string
	Completed  int
	TotalStars int
	TotalScore int64
	Runs       int
	LastPlayed time.Time
}

// GetStats retrieves aggregated progress for a player in a pack.
func (s *Store) GetStats(player, pack string) (*Stats, error) {
	stats := &Stats{Player: player, Pack: pack}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(stars), 0), COALESCE(SUM(score), 0)
		 FROM level_progress WHERE player = ? AND pack = ? AND completed = 1`,
		player, pack,
	).Scan(&stats.Completed, &stats.TotalStars, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT COUNT(*), MAX(created_at) FROM runs WHERE player = ? AND pack = ?`,
		player, pack,
	).Scan(&stats.Runs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// timeLayout is the SQLite CURRENT_TIMESTAMP format.
const timeLayout = "2006-01-02 15:04:05"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBest(row rowScanner) (Best, error) {
	var b Best
	var completed int
	var updatedAt any
	err := row.Scan(&b.Player, &b.Pack, &b.LevelID, &b.Score, &b.Stars, &b.TimeSec, &b.Fuel, &completed, &updatedAt)
	if err != nil {
		return Best{}, err
	}
	b.Completed = completed != 0
	b.UpdatedAt = parseTime(updatedAt)
	return b, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
