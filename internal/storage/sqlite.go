// Package storage keeps the history of finished runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoRuns is returned when a query has no run to report.
var ErrNoRuns = errors.New("storage: no runs recorded")

// timeLayout is how run timestamps are stored.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished delivery shift.
type Run struct {
	ID         string // uuid, assigned by SaveRun when empty
	Level      string
	Player     string // ssh user or local name, may be empty
	Score      uint64
	Deliveries int
	Survived   time.Duration
	Seed       int64
	CreatedAt  time.Time
}

// LevelStats aggregates every run on one level.
type LevelStats struct {
	Level           string
	Runs            int
	HighScore       uint64
	AvgScore        float64
	TotalDeliveries int64
	LongestSurvival time.Duration
	LastPlayed      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			deliveries INTEGER NOT NULL DEFAULT 0,
			survived_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level, score DESC);
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

// SaveRun records a finished run. A missing ID gets a new uuid and a
// zero CreatedAt becomes the current time. The stored run is returned.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, level, player, score, deliveries, survived_ms, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Level, r.Player, int64(r.Score), r.Deliveries, r.Survived.Milliseconds(), r.Seed,
		r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r, nil
}

const runColumns = `run_id, level, player, score, deliveries, survived_ms, seed, created_at`

// TopRuns returns the best runs, highest score first. An empty level
// ranks runs across all levels. Ties keep the earlier run first.
func (s *Store) TopRuns(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR level = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		level, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns returns the latest runs across all levels, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRun returns the highest scoring run on level, or ErrNoRuns.
func (s *Store) BestRun(level string) (Run, error) {
	runs, err := s.TopRuns(level, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return runs[0], nil
}

// HighScore returns the best score on level. Returns 0 if no runs exist.
func (s *Store) HighScore(level string) (uint64, error) {
	run, err := s.BestRun(level)
	if errors.Is(err, ErrNoRuns) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return run.Score, nil
}

// RunCount returns how many runs were recorded on level, or on all
// levels when level is empty.
func (s *Store) RunCount(level string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE ? = '' OR level = ?`, level, level).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// Stats aggregates the runs on level, or on every level when level is
// empty. It returns ErrNoRuns when nothing was played.
func (s *Store) Stats(level string) (LevelStats, error) {
	stats := LevelStats{Level: level}
	var high, longest sql.NullInt64
	var avg sql.NullFloat64
	var last any

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), COALESCE(SUM(deliveries), 0), MAX(survived_ms), MAX(created_at)
		 FROM runs WHERE ? = '' OR level = ?`,
		level, level,
	).Scan(&stats.Runs, &high, &avg, &stats.TotalDeliveries, &longest, &last)
	if err != nil {
		return LevelStats{}, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if stats.Runs == 0 {
		return stats, ErrNoRuns
	}

	stats.HighScore = uint64(high.Int64)
	stats.AvgScore = avg.Float64
	stats.LongestSurvival = time.Duration(longest.Int64) * time.Millisecond
	stats.LastPlayed = parseTime(last)
	return stats, nil
}

// Levels returns the names of every level with recorded runs, sorted.
func (s *Store) Levels() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT level FROM runs ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list levels: %w", err)
	}
	defer rows.Close()

	var levels []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return levels, nil
}

// ClearRuns deletes every run on level.
func (s *Store) ClearRuns(level string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var score, survived int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Level, &r.Player, &score, &r.Deliveries, &survived, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Score = uint64(score)
		r.Survived = time.Duration(survived) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
