package dto

import (
	"time"

	"github.com/ledgerlens/reconcile/internal/domain/report"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ReconcileResponse is returned by POST /api/reconcile.
type ReconcileResponse struct {
	RunID      string         `json:"run_id"`
	Summary    report.Summary `json:"summary"`
	Rows       []report.Row   `json:"rows"`
	ReportPath string         `json:"report_path,omitempty"`
}

// RunResponse represents a stored run in API responses.
type RunResponse struct {
	ID              string       `json:"id"`
	CreatedAt       string       `json:"created_at"`
	ToleranceAmount string       `json:"tolerance_amount"`
	ToleranceDays   int          `json:"tolerance_days"`
	CheckIdentity   bool         `json:"check_identity"`
	SourceCount     int          `json:"source_count"`
	TargetCount     int          `json:"target_count"`
	MatchedCount    int          `json:"matched_count"`
	SourceOnlyCount int          `json:"source_only_count"`
	TargetOnlyCount int          `json:"target_only_count"`
	MatchPercentage float64      `json:"match_percentage"`
	ReportPath      string       `json:"report_path,omitempty"`
	Rows            []report.Row `json:"rows,omitempty"`
}

// RunListResponse is returned when listing runs.
type RunListResponse struct {
	Runs       []RunResponse `json:"runs"`
	TotalCount int           `json:"total_count"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}

// ToRunResponse converts a stored run to its API representation.
func ToRunResponse(run *storage.ReconRun) RunResponse {
	return RunResponse{
		ID:              run.ID,
		CreatedAt:       run.CreatedAt.UTC().Format(time.RFC3339),
		ToleranceAmount: run.ToleranceAmount,
		ToleranceDays:   run.ToleranceDays,
		CheckIdentity:   run.CheckIdentity,
		SourceCount:     run.SourceCount,
		TargetCount:     run.TargetCount,
		MatchedCount:    run.MatchedCount,
		SourceOnlyCount: run.SourceOnlyCount,
		TargetOnlyCount: run.TargetOnlyCount,
		MatchPercentage: run.MatchPercentage,
		ReportPath:      run.ReportPath,
		Rows:            run.Rows,
	}
}
