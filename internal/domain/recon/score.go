package recon

import "strings"

// Identity comparison outcomes.
const (
	identityExact    = 1.0
	identityPartial  = 0.8
	identityMismatch = 0.0
)

// weighting is one of the two named scoring strategies. Exactly one applies
// to a candidate, chosen by whether identity comparison ran for it.
type weighting struct {
	date     float64
	amount   float64
	identity float64
}

var (
	// identityWeighting applies when identity comparison ran.
	identityWeighting = weighting{date: 0.2, amount: 0.4, identity: 0.4}

	// baseWeighting applies when identity is disabled or unknown on
	// either side; the identity term is simply omitted and the remaining
	// weights are used at full scale.
	baseWeighting = weighting{date: 0.3, amount: 0.7}
)

// compareIdentity scores two known identity names: case-insensitive equality
// is exact, case-insensitive containment in either direction (e.g. "Aaron
// Davidson" vs "Aaron") is partial, anything else is a confirmed mismatch.
//
// A mismatch does not disqualify the candidate. The point of the tool is to
// surface misattributed transactions, so a clearly-different person still
// competes for the match and shows up with a person warning.
func compareIdentity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	switch {
	case a == b:
		return identityExact
	case strings.Contains(a, b) || strings.Contains(b, a):
		return identityPartial
	default:
		return identityMismatch
	}
}

// scoreCandidate computes the weighted quality score in [0,1] for a
// candidate that already passed the tolerance window.
func scoreCandidate(c *MatchCandidate, cfg Config) float64 {
	// A zero-tolerance window only admits zero-difference candidates, so
	// it is trivially satisfied; guard the division accordingly.
	dateScore := 1.0
	if cfg.ToleranceDays > 0 {
		dateScore = float64(cfg.ToleranceDays-c.DateDiffDays) / float64(cfg.ToleranceDays)
		if dateScore < 0 {
			dateScore = 0
		}
	}

	amountScore := 1.0
	if cfg.ToleranceAmount.IsPositive() {
		amountScore = cfg.ToleranceAmount.Sub(c.AmountDiff).Div(cfg.ToleranceAmount).InexactFloat64()
		if amountScore < 0 {
			amountScore = 0
		}
	}

	w := baseWeighting
	if c.IdentityChecked {
		w = identityWeighting
	}
	return w.date*dateScore + w.amount*amountScore + w.identity*c.IdentityScore
}
