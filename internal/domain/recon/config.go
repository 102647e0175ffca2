package recon

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Config holds the parameters of one reconciliation run. It is immutable for
// the duration of the run; a new run starts from a fresh Config.
type Config struct {
	// ToleranceAmount is the maximum allowed absolute amount difference
	// for a pair to become a candidate. Zero is valid and requires exact
	// amount equality.
	ToleranceAmount decimal.Decimal

	// ToleranceDays is the maximum allowed date difference in whole days.
	// Zero is valid and requires same-day transactions.
	ToleranceDays int

	// CheckIdentity enables identity comparison. When false, or when
	// either side of a candidate has an unknown identity, candidates are
	// scored on date and amount alone.
	CheckIdentity bool

	// IdentityMap is the token→person table handed to the identity
	// resolver during ingestion. The engine itself does not consult it;
	// records arrive with identities already resolved.
	IdentityMap map[string]string

	// SourceLabel and TargetLabel name the two ledgers in annotation text
	// (e.g. "CapitalOne" and "Jobber").
	SourceLabel string
	TargetLabel string
}

// DefaultConfig mirrors the defaults the reconciliation tool has always
// shipped with: $2.00 amount tolerance, 2 days date tolerance, identity
// checking on.
func DefaultConfig() Config {
	return Config{
		ToleranceAmount: decimal.NewFromFloat(2.0),
		ToleranceDays:   2,
		CheckIdentity:   true,
		SourceLabel:     "Bank",
		TargetLabel:     "Expenses",
	}
}

// Validate checks that tolerances are non-negative and labels are set.
func (c *Config) Validate() error {
	if c.ToleranceAmount.IsNegative() {
		return errors.New("tolerance amount cannot be negative")
	}
	if c.ToleranceDays < 0 {
		return errors.New("tolerance days cannot be negative")
	}
	return nil
}

// sourceLabel returns the configured source-ledger display name.
func (c *Config) sourceLabel() string {
	if c.SourceLabel == "" {
		return "Bank"
	}
	return c.SourceLabel
}

func (c *Config) targetLabel() string {
	if c.TargetLabel == "" {
		return "Expenses"
	}
	return c.TargetLabel
}
