package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens/reconcile/internal/domain/report"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	rows := []report.Row{
		{
			Status:         report.StatusMatch,
			SourceDate:     "2025-06-02",
			SourceAmount:   "100.00",
			SourcePerson:   "Aaron Davidson",
			TargetDate:     "2025-06-03",
			TargetAmount:   "101.50",
			TargetPerson:   "Aaron",
			DateDiffDays:   "1",
			AmountDiff:     "1.50",
			IdentityCheck:  report.IdentityMatch,
			QualityPercent: "92.0",
			Note:           "Found matching transaction. CapitalOne: Aaron Davidson | Jobber: Aaron",
		},
		{
			Status:       report.StatusSourceOnly,
			SourceDate:   "2025-06-04",
			SourceAmount: "42.00",
			SourcePerson: "Unknown",
			Note:         "Transaction by Unknown not found in Jobber - may need to be added",
		},
	}
	summary := report.Summary{
		SourceCount:     2,
		TargetCount:     1,
		MatchedCount:    1,
		SourceOnlyCount: 1,
		MatchPercentage: 50.0,
	}

	err := WriteReport(path, rows, summary, "CapitalOne", "Jobber")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Reconciliation Report")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Status", got[0][0])
	assert.Equal(t, "CapitalOne_Date", got[0][1])
	assert.Equal(t, "Jobber_Amount", got[0][6])
	assert.Equal(t, "MATCH", got[1][0])
	assert.Equal(t, "92.0", got[1][12])
	assert.Equal(t, "SOURCE_ONLY", got[2][0])

	stats, err := f.GetRows("Statistics")
	require.NoError(t, err)
	require.Len(t, stats, 7)
	assert.Equal(t, []string{"Found matches", "1"}, stats[3][:2])
	assert.Equal(t, "50.0%", stats[6][1])
}
