package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/reconcile/internal/domain/report"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun(id string, createdAt time.Time) *ReconRun {
	return &ReconRun{
		ID:              id,
		CreatedAt:       createdAt,
		ToleranceAmount: "2.00",
		ToleranceDays:   2,
		CheckIdentity:   true,
		SourceCount:     10,
		TargetCount:     8,
		MatchedCount:    7,
		SourceOnlyCount: 3,
		TargetOnlyCount: 1,
		MatchPercentage: 70.0,
		Rows: []report.Row{
			{Status: report.StatusMatch, SourceAmount: "100.00", TargetAmount: "101.50"},
			{Status: report.StatusSourceOnly, SourceAmount: "42.00"},
		},
	}
}

func TestStorage_SaveAndGetRun(t *testing.T) {
	s := newTestStorage(t)
	run := sampleRun("run-1", time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))

	require.NoError(t, s.SaveRun(run))
	got, err := s.GetRun("run-1")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "2.00", got.ToleranceAmount)
	assert.True(t, got.CheckIdentity)
	assert.Equal(t, 7, got.MatchedCount)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, report.StatusMatch, got.Rows[0].Status)
	assert.Equal(t, "101.50", got.Rows[0].TargetAmount)
}

func TestStorage_GetRun_NotFound(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.GetRun("missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStorage_SaveRun_Upsert(t *testing.T) {
	s := newTestStorage(t)
	run := sampleRun("run-1", time.Now().UTC())
	require.NoError(t, s.SaveRun(run))

	run.ReportPath = "/reports/run-1.xlsx"
	require.NoError(t, s.SaveRun(run))

	got, err := s.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "/reports/run-1.xlsx", got.ReportPath)

	list, err := s.ListRuns(RunFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
}

func TestStorage_ListRuns_NewestFirstWithPagination(t *testing.T) {
	s := newTestStorage(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := sampleRun("run-"+string(rune('a'+i)), base.AddDate(0, 0, i))
		require.NoError(t, s.SaveRun(run))
	}

	list, err := s.ListRuns(RunFilters{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, list.TotalCount)
	require.Len(t, list.Runs, 2)
	assert.Equal(t, "run-e", list.Runs[0].ID)
	assert.Equal(t, "run-d", list.Runs[1].ID)
	// List results omit the row payload
	assert.Empty(t, list.Runs[0].Rows)

	next, err := s.ListRuns(RunFilters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, next.Runs, 2)
	assert.Equal(t, "run-c", next.Runs[0].ID)
}

func TestMockRepository_MatchesStorageBehavior(t *testing.T) {
	m := NewMockRepository()
	run := sampleRun("run-1", time.Now().UTC())

	require.NoError(t, m.SaveRun(run))

	assert.True(t, m.SaveRunCalled)
	got, err := m.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	missing, err := m.GetRun("missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
