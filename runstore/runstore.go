// Package runstore persists completed page analyses to SQLite so runs can be
// listed, re-exported and compared over time.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hazyhaar/skylt/dbopen"
	"github.com/hazyhaar/skylt/uitext"
)

// Schema for the analysis_runs table. Applied by New.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id TEXT PRIMARY KEY,
	page_url TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL,
	total_elements INTEGER NOT NULL,
	language TEXT NOT NULL,
	confidence REAL NOT NULL,
	result_json TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_created ON analysis_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_url ON analysis_runs(page_url) WHERE page_url != '';
`

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("runstore: run not found")

// Run is a persisted analysis.
type Run struct {
	RunID         string          `json:"run_id"`
	PageURL       string          `json:"page_url,omitempty"`
	Source        string          `json:"source"`
	TotalElements int             `json:"total_elements"`
	Language      uitext.Language `json:"language"`
	Confidence    float64         `json:"confidence"`
	CreatedAt     time.Time       `json:"created_at"`

	// Result is the full analysis. Nil in listings.
	Result *uitext.AnalysisResult `json:"result,omitempty"`
}

// Store persists analysis runs.
type Store struct {
	db *sql.DB
}

// New creates a Store and applies the schema.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("runstore: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save persists a run. The analysis result is stored as JSON.
func (s *Store) Save(ctx context.Context, r *Run) error {
	if r.RunID == "" {
		return fmt.Errorf("runstore: run id must not be empty")
	}
	if r.Result == nil {
		return fmt.Errorf("runstore: run result must not be nil")
	}
	data, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("runstore: marshal result: %w", err)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	err = dbopen.RunTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO analysis_runs
				(run_id, page_url, source, total_elements, language, confidence, result_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, r.PageURL, r.Source,
			r.Result.Summary.TotalElements, string(r.Result.Summary.Language),
			r.Result.Summary.Confidence, string(data), r.CreatedAt.UnixMilli())
		return err
	})
	if err != nil {
		return fmt.Errorf("runstore: insert: %w", err)
	}
	return nil
}

// Get returns one run with its full result.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, page_url, source, total_elements, language, confidence, result_json, created_at
		FROM analysis_runs WHERE run_id = ?`, runID)

	var r Run
	var lang, resultJSON string
	var createdMs int64
	err := row.Scan(&r.RunID, &r.PageURL, &r.Source, &r.TotalElements, &lang, &r.Confidence, &resultJSON, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("runstore: get: %w", err)
	}
	r.Language = uitext.Language(lang)
	r.CreatedAt = time.UnixMilli(createdMs)

	var res uitext.AnalysisResult
	if err := json.Unmarshal([]byte(resultJSON), &res); err != nil {
		return nil, fmt.Errorf("runstore: unmarshal result: %w", err)
	}
	r.Result = &res
	return &r, nil
}

// List returns up to limit runs, newest first, without result payloads.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, page_url, source, total_elements, language, confidence, created_at
		FROM analysis_runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runstore: list: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		var r Run
		var lang string
		var createdMs int64
		if err := rows.Scan(&r.RunID, &r.PageURL, &r.Source, &r.TotalElements, &lang, &r.Confidence, &createdMs); err != nil {
			return nil, fmt.Errorf("runstore: scan: %w", err)
		}
		r.Language = uitext.Language(lang)
		r.CreatedAt = time.UnixMilli(createdMs)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// Delete removes a run. Returns ErrNotFound when the id does not exist.
func (s *Store) Delete(ctx context.Context, runID string) error {
	var n int64
	err := dbopen.RunTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM analysis_runs WHERE run_id = ?`, runID)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("runstore: delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Cleanup deletes runs older than the retention window and returns the count.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UnixMilli()
	var n int64
	err := dbopen.RunTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM analysis_runs WHERE created_at < ?`, cutoff)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("runstore: cleanup: %w", err)
	}
	return n, nil
}
