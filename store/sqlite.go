// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// History is the run history database
type History struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the history database at path
func Open(ctx context.Context, path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &History{db: db, path: path}, nil
}

// Path returns the database file path
func (h *History) Path() string { return h.path }

// Close closes the database
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// BeginRun records a new run, setting and returning its ID
func (h *History) BeginRun(ctx context.Context, rn *Run) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if rn.Started.IsZero() {
		rn.Started = time.Now()
	}
	res, err := h.db.ExecContext(ctx,
		`INSERT INTO runs (scenario, seed, gamma, lambda, epsilon, alpha, started) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rn.Scenario, rn.Seed, rn.Gamma, rn.Lambda, rn.Epsilon, rn.Alpha, rn.Started.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	rn.ID = id
	return id, nil
}

// AddTrial records a trial of an existing run
func (h *History) AddTrial(ctx context.Context, tr Trial) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	goal := 0
	if tr.Goal {
		goal = 1
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO trials (run_id, trial, steps, reward, td_error, goal, secs) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tr.RunID, tr.Trial, tr.Steps, tr.Reward, tr.TDError, goal, tr.Secs)
	if err != nil {
		return fmt.Errorf("failed to insert trial %d of run %d: %w", tr.Trial, tr.RunID, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first (all if limit <= 0)
func (h *History) Runs(ctx context.Context, limit int) ([]Run, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	q := `SELECT r.id, r.scenario, r.seed, r.gamma, r.lambda, r.epsilon, r.alpha, r.started,
	             (SELECT COUNT(*) FROM trials t WHERE t.run_id = r.id)
	      FROM runs r ORDER BY r.id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var rn Run
		var started string
		if err := rows.Scan(&rn.ID, &rn.Scenario, &rn.Seed, &rn.Gamma, &rn.Lambda, &rn.Epsilon, &rn.Alpha, &started, &rn.NTrials); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if rn.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %d: bad start time %q: %w", rn.ID, started, err)
		}
		runs = append(runs, rn)
	}
	return runs, rows.Err()
}

// Trials returns the trials of given run, in trial order
func (h *History) Trials(ctx context.Context, runID int64) ([]Trial, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rows, err := h.db.QueryContext(ctx,
		`SELECT run_id, trial, steps, reward, td_error, goal, secs FROM trials WHERE run_id = ? ORDER BY trial`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trials: %w", err)
	}
	defer rows.Close()
	var trs []Trial
	for rows.Next() {
		var tr Trial
		var goal int
		if err := rows.Scan(&tr.RunID, &tr.Trial, &tr.Steps, &tr.Reward, &tr.TDError, &goal, &tr.Secs); err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}
		tr.Goal = goal != 0
		trs = append(trs, tr)
	}
	return trs, rows.Err()
}
