package recon

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/reconcile/internal/domain/identity"
)

// Origin identifies which ledger a record came from.
type Origin string

const (
	// OriginSource is the bank-statement ledger.
	OriginSource Origin = "source"
	// OriginTarget is the expense-tracking ledger.
	OriginTarget Origin = "target"
)

// TransactionRecord is one normalized ledger entry. Records are created once
// by the ingestion layer and never mutated; the engine only reads them.
type TransactionRecord struct {
	// ID is unique within the record's originating ledger (e.g. a row
	// reference assigned during ingestion).
	ID string

	// Date is the transaction's calendar date. Time-of-day is not
	// significant; date math works on whole days.
	Date time.Time

	// Amount is the positive transaction value. Zero or negative amounts
	// are rejected before matching starts.
	Amount decimal.Decimal

	// Description is free text carried through to the report. It never
	// participates in matching.
	Description string

	// Identity is the canonical person who performed the transaction, or
	// identity.Unknown when not resolvable.
	Identity identity.Identity

	Origin Origin
}

// InvalidRecordError reports a record that violates the engine's
// preconditions. The normalizer is expected to filter these out, so seeing
// one means the caller handed the engine bad data.
type InvalidRecordError struct {
	ID    string
	Field string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record %s: bad %s", e.ID, e.Field)
}

// validateRecords fails fast on records that should never reach the engine:
// zero dates and non-positive amounts.
func validateRecords(records []TransactionRecord) error {
	for i := range records {
		r := &records[i]
		if r.Date.IsZero() {
			return &InvalidRecordError{ID: r.ID, Field: "date"}
		}
		if !r.Amount.IsPositive() {
			return &InvalidRecordError{ID: r.ID, Field: "amount"}
		}
	}
	return nil
}

// daysBetween returns the absolute difference between two calendar dates in
// whole days, ignoring time-of-day and location.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
