package storage

// Repository defines the storage interface for reconciliation run history.
// The interface allows swapping implementations (SQLite today) and makes
// testing with the in-memory mock straightforward.
type Repository interface {
	// SaveRun persists a completed run with its report rows.
	SaveRun(run *ReconRun) error

	// GetRun retrieves a run by ID, report rows included.
	// Returns (nil, nil) when the run does not exist.
	GetRun(id string) (*ReconRun, error)

	// ListRuns returns run summaries (no report rows), newest first.
	ListRuns(filters RunFilters) (*RunListResult, error)

	Close() error
}

// RunFilters defines pagination for listing runs.
type RunFilters struct {
	Limit  int // Max results (0 = default 50)
	Offset int // Pagination offset
}

// RunListResult contains paginated run results.
type RunListResult struct {
	Runs       []*ReconRun `json:"runs"`
	TotalCount int         `json:"total_count"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
