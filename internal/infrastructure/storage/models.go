package storage

import (
	"time"

	"github.com/ledgerlens/reconcile/internal/domain/report"
)

// ReconRun is one persisted reconciliation run: the parameters it ran with,
// its summary statistics, and the report rows it produced.
type ReconRun struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ToleranceAmount string `json:"tolerance_amount"`
	ToleranceDays   int    `json:"tolerance_days"`
	CheckIdentity   bool   `json:"check_identity"`

	SourceCount     int     `json:"source_count"`
	TargetCount     int     `json:"target_count"`
	MatchedCount    int     `json:"matched_count"`
	SourceOnlyCount int     `json:"source_only_count"`
	TargetOnlyCount int     `json:"target_only_count"`
	MatchPercentage float64 `json:"match_percentage"`

	// ReportPath is the exported workbook path, when one was written.
	ReportPath string `json:"report_path,omitempty"`

	// Rows is the full report, stored as JSON. Empty in list results.
	Rows []report.Row `json:"rows,omitempty"`
}
