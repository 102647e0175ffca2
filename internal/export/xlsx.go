// Package export writes reconciliation reports as xlsx workbooks: one sheet
// with the detailed report, one with the run statistics.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens/reconcile/internal/domain/report"
)

const (
	reportSheet = "Reconciliation Report"
	statsSheet  = "Statistics"
)

// WriteReport writes the report workbook to path. The ledger labels become
// part of the column headers (e.g. "CapitalOne_Date").
func WriteReport(path string, rows []report.Row, summary report.Summary, sourceLabel, targetLabel string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeReportSheet(f, rows, sourceLabel, targetLabel); err != nil {
		return err
	}
	if err := writeStatsSheet(f, summary, sourceLabel, targetLabel); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

func writeReportSheet(f *excelize.File, rows []report.Row, sourceLabel, targetLabel string) error {
	// Rename the default sheet rather than juggling sheet indexes
	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return err
	}

	headers := []interface{}{
		"Status",
		sourceLabel + "_Date",
		sourceLabel + "_Amount",
		sourceLabel + "_Person",
		sourceLabel + "_Description",
		targetLabel + "_Date",
		targetLabel + "_Amount",
		targetLabel + "_Person",
		targetLabel + "_Description",
		"Date_Diff_Days",
		"Amount_Diff",
		"Person_Check",
		"Match_Quality_%",
		"Notes",
	}
	if err := setRow(f, reportSheet, 1, headers); err != nil {
		return err
	}

	for i, row := range rows {
		values := []interface{}{
			string(row.Status),
			row.SourceDate,
			row.SourceAmount,
			row.SourcePerson,
			row.SourceDescription,
			row.TargetDate,
			row.TargetAmount,
			row.TargetPerson,
			row.TargetDescription,
			row.DateDiffDays,
			row.AmountDiff,
			row.IdentityCheck,
			row.QualityPercent,
			row.Note,
		}
		if err := setRow(f, reportSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeStatsSheet(f *excelize.File, summary report.Summary, sourceLabel, targetLabel string) error {
	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}

	stats := [][]interface{}{
		{"Metric", "Value"},
		{fmt.Sprintf("Total %s transactions", sourceLabel), summary.SourceCount},
		{fmt.Sprintf("Total %s expenses", targetLabel), summary.TargetCount},
		{"Found matches", summary.MatchedCount},
		{fmt.Sprintf("Only in %s", sourceLabel), summary.SourceOnlyCount},
		{fmt.Sprintf("Only in %s", targetLabel), summary.TargetOnlyCount},
		{"Match percentage", fmt.Sprintf("%.1f%%", summary.MatchPercentage)},
	}
	for i, row := range stats {
		if err := setRow(f, statsSheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
