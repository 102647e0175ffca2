// Package identity maps source-ledger identity tokens (typically card
// numbers) to canonical person identities.
//
// The mapping is static configuration: tokens that are present in the table
// resolve to a known person, tokens that are missing resolve to Unknown, and
// tokens that are present in the data but absent from the table resolve to a
// distinct unknown-token identity that keeps the raw token visible so an
// operator can extend the table.
package identity

import "strings"

// Identity is a canonical person identity attached to a transaction record.
type Identity struct {
	// Name is the display name. For unmapped tokens it carries the raw
	// token (e.g. "Unknown Card 9265") for diagnostic display.
	Name string

	// Known reports whether Name is a canonical person that can take part
	// in identity comparison. Unknown and unmapped-token identities are
	// never compared; candidates involving them fall back to the
	// date/amount weighting.
	Known bool
}

// Unknown is the sentinel identity for records with no identity token.
var Unknown = Identity{Name: "Unknown"}

// String returns the display name.
func (id Identity) String() string {
	return id.Name
}

// Resolver resolves raw identity tokens against a configured token→person
// table. It is stateless; Resolve is a pure lookup.
type Resolver struct {
	table map[string]string
}

// NewResolver creates a resolver over the given token→person table.
// The table is copied so later mutation by the caller has no effect.
func NewResolver(table map[string]string) *Resolver {
	copied := make(map[string]string, len(table))
	for token, person := range table {
		copied[strings.TrimSpace(token)] = strings.TrimSpace(person)
	}
	return &Resolver{table: copied}
}

// Resolve maps a raw token to an identity.
//
// An empty token resolves to Unknown. A token present in the table resolves
// to that person. A non-empty token missing from the table resolves to an
// unknown-token identity that is distinguishable from Unknown but still not
// comparable.
func (r *Resolver) Resolve(token string) Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return Unknown
	}
	if person, ok := r.table[token]; ok {
		return Identity{Name: person, Known: true}
	}
	return Identity{Name: "Unknown Card " + token}
}

// Person wraps an already-canonical name (e.g. the "entered by" column of an
// expense ledger) as a known identity. Blank names resolve to Unknown.
func Person(name string) Identity {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unknown
	}
	return Identity{Name: name, Known: true}
}
