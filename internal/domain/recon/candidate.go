package recon

import "github.com/shopspring/decimal"

// MatchCandidate is a potential pairing of one source record with one target
// record. Candidates exist only while a run is in flight; they reference
// records by ID and own nothing.
type MatchCandidate struct {
	SourceID string
	TargetID string

	// DateDiffDays is the absolute date difference in whole days.
	DateDiffDays int

	// AmountDiff is the absolute amount difference.
	AmountDiff decimal.Decimal

	// IdentityScore is 1.0 for an exact name match, 0.8 for a substring
	// match in either direction, 0.0 for a confirmed mismatch. Only
	// meaningful when IdentityChecked is true.
	IdentityScore float64

	// IdentityChecked reports whether identity comparison ran for this
	// candidate. It is false when identity checking is disabled or when
	// either side's identity is unknown.
	IdentityChecked bool

	// Quality is the weighted confidence score in [0,1].
	Quality float64
}

// generateCandidates enumerates every (source, target) pair whose date and
// amount differences are inside the tolerance window, scoring each as it is
// produced.
//
// The enumeration order is source-ascending then target-ascending. The
// greedy assignment relies on this order to break quality ties
// deterministically, so it must not change.
func generateCandidates(source, target []TransactionRecord, cfg Config) []MatchCandidate {
	var candidates []MatchCandidate

	for i := range source {
		for j := range target {
			src, tgt := &source[i], &target[j]

			dateDiff := daysBetween(src.Date, tgt.Date)
			if dateDiff > cfg.ToleranceDays {
				continue
			}
			amountDiff := src.Amount.Sub(tgt.Amount).Abs()
			if amountDiff.GreaterThan(cfg.ToleranceAmount) {
				continue
			}

			c := MatchCandidate{
				SourceID:     src.ID,
				TargetID:     tgt.ID,
				DateDiffDays: dateDiff,
				AmountDiff:   amountDiff,
			}
			if cfg.CheckIdentity && src.Identity.Known && tgt.Identity.Known {
				c.IdentityChecked = true
				c.IdentityScore = compareIdentity(src.Identity.Name, tgt.Identity.Name)
			}
			c.Quality = scoreCandidate(&c, cfg)

			candidates = append(candidates, c)
		}
	}

	return candidates
}
