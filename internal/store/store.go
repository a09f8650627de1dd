// Package store persists extraction results to SQLite so repeated
// analysis runs over a replay library can be queried without re-scanning.
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

	"github.com/meleetools/framescan/internal/extract"
	"github.com/meleetools/framescan/internal/logger"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// Run is one analysis invocation over a set of matches.
type Run struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	GapFrames int       `json:"gap_frames"`
	Notes     string    `json:"notes,omitempty"`
}

// MatchRecord is one stored match within a run.
type MatchRecord struct {
	MatchID   string    `json:"match_id"`
	RunID     string    `json:"run_id"`
	Filename  string    `json:"filename"`
	StageID   int       `json:"stage_id"`
	Stage     string    `json:"stage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRecord is one stored event row. Payload carries the kind-specific
// record as JSON.
type EventRecord struct {
	ID         int64           `json:"id"`
	MatchID    string          `json:"match_id"`
	Port       int             `json:"port"`
	Kind       string          `json:"kind"`
	StartFrame int             `json:"start_frame"`
	EndFrame   int             `json:"end_frame"`
	Killed     bool            `json:"killed"`
	Payload    json.RawMessage `json:"payload"`
}

// SQLiteStore persists runs, matches, and events in a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewSQLiteStore opens (creating if needed) the results database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, ".framescan", "results.db")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// WAL mode so concurrent match workers can write without contention.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug().
		Str("path", dbPath).
		Msg("Opened results store")

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		gap_frames INTEGER NOT NULL,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS matches (
		match_id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		stage_id INTEGER NOT NULL,
		stage TEXT,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		port INTEGER NOT NULL,
		kind TEXT NOT NULL,
		start_frame INTEGER NOT NULL,
		end_frame INTEGER NOT NULL,
		killed INTEGER NOT NULL DEFAULT 0,
		payload TEXT,
		FOREIGN KEY (match_id) REFERENCES matches(match_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_matches_run ON matches(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_match ON events(match_id, start_frame);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateRun records a new analysis run and returns it.
func (s *SQLiteStore) CreateRun(gapFrames int, notes string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &Run{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now(),
		GapFrames: gapFrames,
		Notes:     notes,
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, created_at, gap_frames, notes) VALUES (?, ?, ?, ?)`,
		run.RunID, run.CreatedAt.Unix(), run.GapFrames, run.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// StoreResult stores one match's extraction output under a run: the
// match row plus every event of both players, in one transaction.
func (s *SQLiteStore) StoreResult(runID string, res *extract.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	matchID := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO matches (match_id, run_id, filename, stage_id, stage, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		matchID, runID, res.Filename, res.StageID, res.Stage, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to store match: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO events (match_id, port, kind, start_frame, end_frame, killed, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range res.Players {
		if p == nil {
			continue
		}
		for _, ev := range p.Events() {
			payload, err := json.Marshal(ev.Data)
			if err != nil {
				return "", fmt.Errorf("failed to marshal %s event: %w", ev.Kind, err)
			}
			killed := 0
			if ev.Killed {
				killed = 1
			}
			if _, err := stmt.Exec(matchID, p.Port, ev.Kind, ev.StartFrame, ev.EndFrame, killed, string(payload)); err != nil {
				return "", fmt.Errorf("failed to store event: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit match: %w", err)
	}
	return matchID, nil
}

// ListMatches returns every match stored under a run, newest first.
func (s *SQLiteStore) ListMatches(runID string) ([]*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT match_id, run_id, filename, stage_id, stage, created_at
		 FROM matches WHERE run_id = ? ORDER BY created_at DESC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []*MatchRecord
	for rows.Next() {
		var m MatchRecord
		var createdAt int64
		var stage sql.NullString
		if err := rows.Scan(&m.MatchID, &m.RunID, &m.Filename, &m.StageID, &stage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Stage = stage.String
		m.CreatedAt = time.Unix(createdAt, 0)
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// MatchEvents returns a match's events in start-frame order, optionally
// filtered by kind (empty kind = all).
func (s *SQLiteStore) MatchEvents(matchID, kind string) ([]*EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, match_id, port, kind, start_frame, end_frame, killed, payload
	          FROM events WHERE match_id = ?`
	args := []interface{}{matchID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY start_frame"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*EventRecord
	for rows.Next() {
		var e EventRecord
		var killed int
		var payload sql.NullString
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Port, &e.Kind, &e.StartFrame, &e.EndFrame, &killed, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Killed = killed != 0
		if payload.Valid {
			e.Payload = json.RawMessage(payload.String)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// CountEventsByKind tallies a run's events per kind across all matches.
func (s *SQLiteStore) CountEventsByKind(runID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT e.kind, COUNT(*) FROM events e
		 JOIN matches m ON m.match_id = e.match_id
		 WHERE m.run_id = ? GROUP BY e.kind`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
