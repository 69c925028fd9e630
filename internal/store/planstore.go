// Package store persists finished search runs to a local SQLite database:
// problem, configuration, statistics, and the plan itself. The archive is a
// convenience for comparing heuristics and join orders across runs; the
// engine never reads from it.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"liftplan/internal/logging"
	"liftplan/internal/search"
)

// Run is one archived search run.
type Run struct {
	ID         string
	Problem    string
	Heuristic  string
	JoinOrder  string
	Solved     bool
	Expansions int
	Generated  int
	PlanLength int
	Plan       []search.Step
	WallTime   time.Duration
	CreatedAt  time.Time
}

// PlanStore wraps the SQLite archive.
type PlanStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open creates or opens the archive at path, applying the schema.
func Open(path string) (*PlanStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.Get(logging.CategoryStore).Debugw("set journal_mode failed", "error", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.Get(logging.CategoryStore).Debugw("set busy_timeout failed", "error", err)
	}

	s := &PlanStore{db: db, dbPath: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *PlanStore) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *PlanStore) Path() string { return s.dbPath }

func (s *PlanStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		problem TEXT NOT NULL,
		heuristic TEXT NOT NULL,
		join_order TEXT NOT NULL,
		solved INTEGER NOT NULL,
		expansions INTEGER NOT NULL,
		generated INTEGER NOT NULL,
		plan_length INTEGER NOT NULL,
		plan_json TEXT NOT NULL,
		wall_time_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_problem ON runs(problem, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record archives one run and returns its generated id.
func (s *PlanStore) Record(r Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	planJSON, err := json.Marshal(r.Plan)
	if err != nil {
		return "", fmt.Errorf("store: marshal plan: %w", err)
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.Exec(`
		INSERT INTO runs (id, problem, heuristic, join_order, solved, expansions, generated, plan_length, plan_json, wall_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Problem, r.Heuristic, r.JoinOrder, boolToInt(r.Solved),
		r.Expansions, r.Generated, len(r.Plan), string(planJSON), r.WallTime.Milliseconds(),
		r.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	logging.Get(logging.CategoryStore).Infow("run archived",
		"id", r.ID, "problem", r.Problem, "solved", r.Solved, "plan_length", len(r.Plan))
	return r.ID, nil
}

// History returns the most recent runs for a problem, newest first. An
// empty problem name returns runs for all problems.
func (s *PlanStore) History(problem string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, problem, heuristic, join_order, solved, expansions, generated, plan_json, wall_time_ms, created_at
		FROM runs`
	args := []any{}
	if problem != "" {
		query += ` WHERE problem = ?`
		args = append(args, problem)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var solved int
		var planJSON string
		var wallMs int64
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Problem, &r.Heuristic, &r.JoinOrder, &solved,
			&r.Expansions, &r.Generated, &planJSON, &wallMs, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		r.Solved = solved != 0
		r.WallTime = time.Duration(wallMs) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		}
		if err := json.Unmarshal([]byte(planJSON), &r.Plan); err != nil {
			return nil, fmt.Errorf("store: unmarshal plan for %s: %w", r.ID, err)
		}
		r.PlanLength = len(r.Plan)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
