package recon

import "sort"

// assign converts the unordered candidate list into a one-to-one matching.
//
// Candidates are stable-sorted by quality descending, then consumed in a
// single pass: a candidate is accepted iff neither of its records has been
// claimed by an earlier (higher-quality) candidate. The stable sort keeps
// equal-quality candidates in generation order, which makes the whole run
// deterministic.
//
// This is a greedy maximal matching, not a maximum-weight one: a locally
// better pairing can block a globally better pairing elsewhere. That
// trade-off is deliberate and downstream numbers depend on it.
func assign(candidates []MatchCandidate) (accepted []MatchCandidate, usedSource, usedTarget map[string]bool) {
	sorted := make([]MatchCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quality > sorted[j].Quality
	})

	usedSource = make(map[string]bool)
	usedTarget = make(map[string]bool)

	for _, c := range sorted {
		if usedSource[c.SourceID] || usedTarget[c.TargetID] {
			continue
		}
		usedSource[c.SourceID] = true
		usedTarget[c.TargetID] = true
		accepted = append(accepted, c)
	}

	return accepted, usedSource, usedTarget
}
