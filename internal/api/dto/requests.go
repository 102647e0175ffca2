package dto

// ReconcileRequest is the body of POST /api/reconcile. Records arrive
// already normalized; the engine rejects anything with an invalid date or a
// non-positive amount.
type ReconcileRequest struct {
	Source []RecordRequest `json:"source" binding:"required"`
	Target []RecordRequest `json:"target" binding:"required"`

	// ReportPath, when set, makes the server write the xlsx report there.
	ReportPath string `json:"report_path"`
}

// RecordRequest is one normalized ledger entry.
type RecordRequest struct {
	// ID is optional; omitted IDs are assigned positionally.
	ID string `json:"id"`

	// Date in YYYY-MM-DD form.
	Date string `json:"date" binding:"required"`

	// Amount as a decimal string, e.g. "101.50".
	Amount string `json:"amount" binding:"required"`

	Description string `json:"description"`

	// Person is a canonical person name. Card is a raw card token that
	// goes through the configured identity map; it wins over Person when
	// both are set.
	Person string `json:"person"`
	Card   string `json:"card"`
}
