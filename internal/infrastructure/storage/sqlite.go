package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for reconciliation runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS recon_runs (
	id                TEXT PRIMARY KEY,
	created_at        TIMESTAMP NOT NULL,
	tolerance_amount  TEXT NOT NULL,
	tolerance_days    INTEGER NOT NULL,
	check_identity    BOOLEAN NOT NULL,
	source_count      INTEGER NOT NULL,
	target_count      INTEGER NOT NULL,
	matched_count     INTEGER NOT NULL,
	source_only_count INTEGER NOT NULL,
	target_only_count INTEGER NOT NULL,
	match_percentage  REAL NOT NULL,
	report_path       TEXT NOT NULL DEFAULT '',
	rows_json         TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_recon_runs_created_at ON recon_runs(created_at DESC);
`

// NewStorage creates a new storage instance backed by a SQLite database.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun persists a completed run with its report rows.
func (s *Storage) SaveRun(run *ReconRun) error {
	rowsJSON, err := json.Marshal(run.Rows)
	if err != nil {
		return fmt.Errorf("failed to encode report rows: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO recon_runs
	(id, created_at, tolerance_amount, tolerance_days, check_identity,
	 source_count, target_count, matched_count, source_only_count,
	 target_only_count, match_percentage, report_path, rows_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		run.ID,
		run.CreatedAt,
		run.ToleranceAmount,
		run.ToleranceDays,
		run.CheckIdentity,
		run.SourceCount,
		run.TargetCount,
		run.MatchedCount,
		run.SourceOnlyCount,
		run.TargetOnlyCount,
		run.MatchPercentage,
		run.ReportPath,
		string(rowsJSON),
	)
	return err
}

// GetRun retrieves a run by ID, report rows included.
func (s *Storage) GetRun(id string) (*ReconRun, error) {
	query := `
	SELECT id, created_at, tolerance_amount, tolerance_days, check_identity,
	       source_count, target_count, matched_count, source_only_count,
	       target_only_count, match_percentage, report_path, rows_json
	FROM recon_runs WHERE id = ?
	`

	run := &ReconRun{}
	var rowsJSON string
	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.CreatedAt,
		&run.ToleranceAmount,
		&run.ToleranceDays,
		&run.CheckIdentity,
		&run.SourceCount,
		&run.TargetCount,
		&run.MatchedCount,
		&run.SourceOnlyCount,
		&run.TargetOnlyCount,
		&run.MatchPercentage,
		&run.ReportPath,
		&rowsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(rowsJSON), &run.Rows); err != nil {
		return nil, fmt.Errorf("failed to decode report rows for run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns run summaries without report rows, newest first.
func (s *Storage) ListRuns(filters RunFilters) (*RunListResult, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM recon_runs`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
	SELECT id, created_at, tolerance_amount, tolerance_days, check_identity,
	       source_count, target_count, matched_count, source_only_count,
	       target_only_count, match_percentage, report_path
	FROM recon_runs
	ORDER BY created_at DESC
	LIMIT ? OFFSET ?
	`

	rows, err := s.db.Query(query, limit, filters.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &RunListResult{
		Runs:       make([]*ReconRun, 0, limit),
		TotalCount: total,
		Limit:      limit,
		Offset:     filters.Offset,
	}

	for rows.Next() {
		run := &ReconRun{}
		if err := rows.Scan(
			&run.ID,
			&run.CreatedAt,
			&run.ToleranceAmount,
			&run.ToleranceDays,
			&run.CheckIdentity,
			&run.SourceCount,
			&run.TargetCount,
			&run.MatchedCount,
			&run.SourceOnlyCount,
			&run.TargetOnlyCount,
			&run.MatchPercentage,
			&run.ReportPath,
		); err != nil {
			return nil, err
		}
		result.Runs = append(result.Runs, run)
	}
	return result, rows.Err()
}
