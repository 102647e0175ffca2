// Package cli provides console output helpers for the reconcile command.
package cli

import (
	"fmt"
	"strings"

	"github.com/ledgerlens/reconcile/internal/application/service"
	"github.com/ledgerlens/reconcile/internal/domain/report"
)

// PrintHeader prints the application header.
func PrintHeader(sourceLabel, targetLabel string) {
	fmt.Printf("reconcile: %s vs %s\n", sourceLabel, targetLabel)
}

// PrintConfiguration prints the run parameters.
func PrintConfiguration(toleranceAmount float64, toleranceDays int, checkIdentity bool) {
	fmt.Printf("Tolerance: $%.2f / %d days | Identity check: %t\n\n", toleranceAmount, toleranceDays, checkIdentity)
}

// PrintSummary prints the reconciliation result summary and follow-up
// recommendations.
func PrintSummary(result *service.RunResult, sourceLabel, targetLabel string) {
	s := result.Summary

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Matched=%d OnlyIn%s=%d OnlyIn%s=%d Match=%.1f%%\n",
		s.MatchedCount, sourceLabel, s.SourceOnlyCount, targetLabel, s.TargetOnlyCount, s.MatchPercentage)

	if s.SourceOnlyCount > 0 {
		fmt.Printf("\n%d transactions found only in %s. Recommend adding these expenses to %s.\n",
			s.SourceOnlyCount, sourceLabel, targetLabel)
	}
	if s.TargetOnlyCount > 0 {
		fmt.Printf("%d expenses found only in %s. Recommend verifying entry accuracy (amounts, dates).\n",
			s.TargetOnlyCount, targetLabel)
	}

	if mismatches := countPersonMismatches(result.Rows); mismatches > 0 {
		fmt.Printf("%d matches have different people. Verify that transactions were performed with correct cards.\n",
			mismatches)
	}

	if result.ReportPath != "" {
		fmt.Printf("\nReport written to %s\n", result.ReportPath)
	}
	fmt.Printf("Run ID: %s\n", result.RunID)
}

func countPersonMismatches(rows []report.Row) int {
	count := 0
	for _, row := range rows {
		if row.Status == report.StatusMatch && row.IdentityCheck == report.IdentityMismatch {
			count++
		}
	}
	return count
}
