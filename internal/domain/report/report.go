// Package report turns a reconciliation result into the row and summary
// content the rendering layers (xlsx export, HTTP API, CLI) present.
// It owns content only; column widths, colors and file formats live with
// the renderers.
package report

import (
	"fmt"
	"strconv"

	"github.com/ledgerlens/reconcile/internal/domain/recon"
)

// Status classifies one report row.
type Status string

const (
	StatusMatch      Status = "MATCH"
	StatusSourceOnly Status = "SOURCE_ONLY"
	StatusTargetOnly Status = "TARGET_ONLY"
)

// Identity-check outcome labels shown on matched rows.
const (
	IdentityMatch     = "Match"
	IdentityMismatch  = "Different Person"
	IdentityUnchecked = ""
)

// Row is one line of the reconciliation report. Cells that do not apply to
// the row's status are empty strings, matching how the report renders.
type Row struct {
	Status Status `json:"status"`

	SourceDate        string `json:"source_date"`
	SourceAmount      string `json:"source_amount"`
	SourcePerson      string `json:"source_person"`
	SourceDescription string `json:"source_description"`

	TargetDate        string `json:"target_date"`
	TargetAmount      string `json:"target_amount"`
	TargetPerson      string `json:"target_person"`
	TargetDescription string `json:"target_description"`

	DateDiffDays   string `json:"date_diff_days"`
	AmountDiff     string `json:"amount_diff"`
	IdentityCheck  string `json:"identity_check"`
	QualityPercent string `json:"quality_percent"`

	Note string `json:"note"`
}

// Summary holds the run-level statistics.
type Summary struct {
	SourceCount     int     `json:"source_count"`
	TargetCount     int     `json:"target_count"`
	MatchedCount    int     `json:"matched_count"`
	SourceOnlyCount int     `json:"source_only_count"`
	TargetOnlyCount int     `json:"target_only_count"`
	MatchPercentage float64 `json:"match_percentage"`
}

const dateLayout = "2006-01-02"

// Build produces the report rows and summary for a result. Rows appear in a
// fixed order: matches in assignment order, then unmatched source records,
// then unmatched target records, each in input order.
func Build(result *recon.Result) ([]Row, Summary) {
	rows := make([]Row, 0, len(result.Matches)+len(result.UnmatchedSource)+len(result.UnmatchedTarget))

	for _, m := range result.Matches {
		identityCheck := IdentityUnchecked
		if m.IdentityChecked {
			identityCheck = IdentityMatch
			if !m.IdentityAgrees {
				identityCheck = IdentityMismatch
			}
		}
		rows = append(rows, Row{
			Status:            StatusMatch,
			SourceDate:        m.Source.Date.Format(dateLayout),
			SourceAmount:      m.Source.Amount.StringFixed(2),
			SourcePerson:      m.Source.Identity.String(),
			SourceDescription: m.Source.Description,
			TargetDate:        m.Target.Date.Format(dateLayout),
			TargetAmount:      m.Target.Amount.StringFixed(2),
			TargetPerson:      m.Target.Identity.String(),
			TargetDescription: m.Target.Description,
			DateDiffDays:      strconv.Itoa(m.DateDiffDays),
			AmountDiff:        m.AmountDiff.StringFixed(2),
			IdentityCheck:     identityCheck,
			QualityPercent:    fmt.Sprintf("%.1f", m.Quality*100),
			Note:              m.Note,
		})
	}

	for _, u := range result.UnmatchedSource {
		rows = append(rows, Row{
			Status:            StatusSourceOnly,
			SourceDate:        u.Record.Date.Format(dateLayout),
			SourceAmount:      u.Record.Amount.StringFixed(2),
			SourcePerson:      u.Record.Identity.String(),
			SourceDescription: u.Record.Description,
			Note:              u.Note,
		})
	}

	for _, u := range result.UnmatchedTarget {
		rows = append(rows, Row{
			Status:            StatusTargetOnly,
			TargetDate:        u.Record.Date.Format(dateLayout),
			TargetAmount:      u.Record.Amount.StringFixed(2),
			TargetPerson:      u.Record.Identity.String(),
			TargetDescription: u.Record.Description,
			Note:              u.Note,
		})
	}

	return rows, Summarize(result)
}

// Summarize computes the run-level statistics on their own.
func Summarize(result *recon.Result) Summary {
	matched := len(result.Matches)
	s := Summary{
		SourceCount:     matched + len(result.UnmatchedSource),
		TargetCount:     matched + len(result.UnmatchedTarget),
		MatchedCount:    matched,
		SourceOnlyCount: len(result.UnmatchedSource),
		TargetOnlyCount: len(result.UnmatchedTarget),
	}

	larger := s.SourceCount
	if s.TargetCount > larger {
		larger = s.TargetCount
	}
	if larger > 0 {
		s.MatchPercentage = float64(matched) / float64(larger) * 100
	}
	return s
}
