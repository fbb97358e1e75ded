package rosterimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pream14/FinanceFrontend/internal/encoding"
	"github.com/pream14/FinanceFrontend/internal/roster"
)

const (
	colName     = "Name"
	colContact  = "Contact Number"
	colLocation = "Location"
	colLoan     = "Loan Amount"
)

// FieldCSV parses the spreadsheet layout field offices export:
// preamble rows, then a header row carrying the landmark columns, then
// one customer per row. Exports come in assorted encodings, so input
// is normalized to UTF-8 first.
type FieldCSV struct{}

func NewFieldCSV() *FieldCSV {
	return &FieldCSV{}
}

func (p *FieldCSV) Parse(r io.Reader) ([]CustomerRecord, error) {
	decoded, err := encoding.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding roster file: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster csv: %w", err)
	}

	var records []CustomerRecord

	headerFound := false

	idxName := -1
	idxContact := -1
	idxLocation := -1
	idxLoan := -1

	for _, row := range rows {
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch strings.TrimSpace(col) {
				case colName:
					idxName = i
					matches++
				case colContact:
					idxContact = i
					matches++
				case colLocation:
					idxLocation = i
					matches++
				case colLoan:
					idxLoan = i
					matches++
				}
			}

			// Name and Contact Number are the minimum to treat a row
			// as the header.
			if matches >= 2 && idxName != -1 && idxContact != -1 {
				headerFound = true
			}

			continue
		}

		if len(row) <= idxContact || len(row) <= idxName {
			continue
		}

		contact := strings.TrimSpace(row[idxContact])
		if contact == "" {
			// Footer or spacer row.
			continue
		}

		rec := CustomerRecord{
			Customer: roster.Customer{
				ID:      contact,
				Name:    strings.TrimSpace(row[idxName]),
				Contact: contact,
			},
		}

		if idxLocation != -1 && len(row) > idxLocation {
			rec.Customer.Location = strings.TrimSpace(row[idxLocation])
		}

		if idxLoan != -1 && len(row) > idxLoan {
			amount, err := parseLoanAmount(row[idxLoan])
			if err != nil {
				// Offices leave the column blank or put dashes in it;
				// a missing principal is not worth rejecting the row.
				amount = 0
			}

			rec.LoanAmount = amount
		}

		records = append(records, rec)
	}

	if !headerFound {
		return nil, fmt.Errorf("no header row found (expected %q and %q columns)", colName, colContact)
	}

	return records, nil
}

// parseLoanAmount reads amounts like "12,000" or "12000.50" into whole
// currency units.
func parseLoanAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
