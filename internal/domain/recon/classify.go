package recon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Match is one accepted pairing together with the annotation content the
// reporting layer renders.
type Match struct {
	Source TransactionRecord
	Target TransactionRecord

	DateDiffDays int
	AmountDiff   decimal.Decimal

	// IdentityChecked and IdentityAgrees describe the identity outcome:
	// checked+agrees is a same-person match (exact or partial),
	// checked+!agrees is a person warning, unchecked means identity did
	// not participate.
	IdentityChecked bool
	IdentityAgrees  bool
	IdentityScore   float64

	Quality float64
	Note    string
}

// UnmatchedRecord is a record with no accepted pairing, annotated with the
// recommended follow-up.
type UnmatchedRecord struct {
	Record TransactionRecord
	Note   string
}

// Result is the outcome of one reconciliation run. Every source record
// appears in exactly one of Matches or UnmatchedSource; symmetric for
// target records.
type Result struct {
	Matches         []Match
	UnmatchedSource []UnmatchedRecord
	UnmatchedTarget []UnmatchedRecord
}

// classify combines the accepted assignment with the full record sets into
// the three-way classification. Pure function of its inputs.
func classify(source, target []TransactionRecord, accepted []MatchCandidate, usedSource, usedTarget map[string]bool, cfg Config) *Result {
	sourceByID := make(map[string]*TransactionRecord, len(source))
	for i := range source {
		sourceByID[source[i].ID] = &source[i]
	}
	targetByID := make(map[string]*TransactionRecord, len(target))
	for i := range target {
		targetByID[target[i].ID] = &target[i]
	}

	result := &Result{Matches: make([]Match, 0, len(accepted))}

	for _, c := range accepted {
		src := sourceByID[c.SourceID]
		tgt := targetByID[c.TargetID]
		m := Match{
			Source:          *src,
			Target:          *tgt,
			DateDiffDays:    c.DateDiffDays,
			AmountDiff:      c.AmountDiff,
			IdentityChecked: c.IdentityChecked,
			IdentityAgrees:  c.IdentityChecked && c.IdentityScore > identityMismatch,
			IdentityScore:   c.IdentityScore,
			Quality:         c.Quality,
			Note: fmt.Sprintf("Found matching transaction. %s: %s | %s: %s",
				cfg.sourceLabel(), src.Identity, cfg.targetLabel(), tgt.Identity),
		}
		result.Matches = append(result.Matches, m)
	}

	for i := range source {
		if usedSource[source[i].ID] {
			continue
		}
		result.UnmatchedSource = append(result.UnmatchedSource, UnmatchedRecord{
			Record: source[i],
			Note: fmt.Sprintf("Transaction by %s not found in %s - may need to be added",
				source[i].Identity, cfg.targetLabel()),
		})
	}

	for i := range target {
		if usedTarget[target[i].ID] {
			continue
		}
		result.UnmatchedTarget = append(result.UnmatchedTarget, UnmatchedRecord{
			Record: target[i],
			Note: fmt.Sprintf("Expense by %s not found in %s - verify entry accuracy",
				target[i].Identity, cfg.sourceLabel()),
		})
	}

	return result
}
