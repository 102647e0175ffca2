package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	runs map[string]*ReconRun

	// Hooks for test assertions
	SaveRunCalled bool
	LastSavedRun  *ReconRun

	// Error injection for testing error paths
	SaveRunErr  error
	GetRunErr   error
	ListRunsErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing.
func NewMockRepository() *MockRepository {
	return &MockRepository{runs: make(map[string]*ReconRun)}
}

// Close does nothing for the mock.
func (m *MockRepository) Close() error {
	return nil
}

// SaveRun stores the run in the in-memory map.
func (m *MockRepository) SaveRun(run *ReconRun) error {
	m.SaveRunCalled = true
	m.LastSavedRun = run
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}
	m.runs[run.ID] = run
	return nil
}

// GetRun retrieves a run by ID.
func (m *MockRepository) GetRun(id string) (*ReconRun, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	return m.runs[id], nil
}

// ListRuns returns stored runs newest first.
func (m *MockRepository) ListRuns(filters RunFilters) (*RunListResult, error) {
	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	all := make([]*ReconRun, 0, len(m.runs))
	for _, run := range m.runs {
		all = append(all, run)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := filters.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return &RunListResult{
		Runs:       all[start:end],
		TotalCount: len(all),
		Limit:      limit,
		Offset:     filters.Offset,
	}, nil
}
