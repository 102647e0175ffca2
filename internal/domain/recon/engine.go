// Package recon implements the reconciliation matching engine.
//
// Given two sets of normalized transaction records and a tolerance policy,
// the engine decides which records from each set describe the same
// underlying financial event, scores each candidate pairing, resolves the
// candidate graph into a one-to-one assignment, and classifies every record
// as matched, source-only, or target-only.
//
// A run is a single synchronous call chain over immutable inputs:
//
//	records → generateCandidates → assign → classify → Result
//
// The engine holds no state between runs and does no I/O; ingestion and
// report rendering live elsewhere.
package recon

// Engine runs reconciliations under a fixed Config. Safe for concurrent use;
// each Reconcile call is independent.
type Engine struct {
	cfg Config
}

// NewEngine validates the config and returns an engine bound to it.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's run parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reconcile matches the source ledger against the target ledger.
//
// Inputs must already be normalized: valid dates, positive amounts,
// identities resolved. A record violating those preconditions fails the
// whole run with an *InvalidRecordError rather than risking a materially
// wrong match.
//
// Identical inputs always produce an identical Result, including match
// order.
func (e *Engine) Reconcile(source, target []TransactionRecord) (*Result, error) {
	if err := validateRecords(source); err != nil {
		return nil, err
	}
	if err := validateRecords(target); err != nil {
		return nil, err
	}

	candidates := generateCandidates(source, target, e.cfg)
	accepted, usedSource, usedTarget := assign(candidates)
	return classify(source, target, accepted, usedSource, usedTarget, e.cfg), nil
}
