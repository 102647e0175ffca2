// Package ingest reads ledger spreadsheets into normalized transaction
// records.
//
// Column names are explicit configuration; nothing about the sheet layout is
// guessed. Rows with blank or unparseable dates/amounts and rows with
// non-positive amounts are dropped, so the matching engine only ever sees
// records that satisfy its preconditions.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens/reconcile/internal/domain/identity"
	"github.com/ledgerlens/reconcile/internal/domain/recon"
)

// ColumnMap names the spreadsheet columns to read. Date and Amount are
// required; Description and Identity may be empty or absent from the sheet.
type ColumnMap struct {
	Date        string
	Amount      string
	Description string
	Identity    string
}

// Options controls how one ledger file is read.
type Options struct {
	Origin recon.Origin

	Columns ColumnMap

	// TokenIdentity marks the identity column as raw card tokens that go
	// through the resolver. When false the column already holds person
	// names (e.g. an "Entered by" column).
	TokenIdentity bool

	// Resolver maps card tokens to people. Required when TokenIdentity.
	Resolver *identity.Resolver
}

// Ledger is the result of reading one file.
type Ledger struct {
	Records []recon.TransactionRecord

	// Skipped counts data rows dropped during normalization (blank or
	// unparseable cells, non-positive amounts).
	Skipped int
}

// Accepted date layouts. A fixed list, not locale detection.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"01/02/06",
	"2006-01-02 15:04:05",
}

// ReadFile reads the first sheet of an xlsx workbook.
func ReadFile(path string, opts Options) (*Ledger, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ReadRows(rows, opts)
}

// ReadRows normalizes already-extracted sheet rows. The first row must be
// the header row.
func ReadRows(rows [][]string, opts Options) (*Ledger, error) {
	if opts.TokenIdentity && opts.Resolver == nil {
		return nil, fmt.Errorf("token identity requires a resolver")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	cols, err := locateColumns(rows[0], opts.Columns)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{}
	for i, row := range rows[1:] {
		// Sheet row number, 1-based with the header on row 1
		rowNum := i + 2

		date, ok := parseDate(cell(row, cols.date))
		if !ok {
			ledger.Skipped++
			continue
		}
		amount, ok := parseAmount(cell(row, cols.amount))
		if !ok || !amount.IsPositive() {
			ledger.Skipped++
			continue
		}

		record := recon.TransactionRecord{
			ID:          fmt.Sprintf("%s-%d", opts.Origin, rowNum),
			Date:        date,
			Amount:      amount,
			Description: strings.TrimSpace(cell(row, cols.description)),
			Identity:    identity.Unknown,
			Origin:      opts.Origin,
		}
		if cols.identity >= 0 {
			raw := cell(row, cols.identity)
			if opts.TokenIdentity {
				record.Identity = opts.Resolver.Resolve(normalizeToken(raw))
			} else {
				record.Identity = identity.Person(raw)
			}
		}

		ledger.Records = append(ledger.Records, record)
	}

	return ledger, nil
}

// columnIndexes holds resolved header positions; -1 means not present.
type columnIndexes struct {
	date        int
	amount      int
	description int
	identity    int
}

func locateColumns(header []string, m ColumnMap) (columnIndexes, error) {
	find := func(name string) int {
		if name == "" {
			return -1
		}
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{
		date:        find(m.Date),
		amount:      find(m.Amount),
		description: find(m.Description),
		identity:    find(m.Identity),
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("date column %q not found", m.Date)
	}
	if cols.amount < 0 {
		return cols, fmt.Errorf("amount column %q not found", m.Amount)
	}
	return cols, nil
}

// cell returns the trimmed value at index idx, or "" when the row is short
// or the column absent.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Unstyled cells can surface stored dates as raw serial numbers
	if serial, err := strconv.Atoi(s); err == nil && serial > 59 {
		return excelEpoch.AddDate(0, 0, serial), true
	}
	return time.Time{}, false
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeToken canonicalizes card tokens that arrive numeric-typed, e.g.
// "9265.0" → "9265".
func normalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
