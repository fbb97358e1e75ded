// Package rosterimport turns customer lists handed over by field
// offices into roster records.
package rosterimport

import (
	"fmt"
	"io"

	"github.com/pream14/FinanceFrontend/internal/roster"
)

// Format names a supported hand-over file layout.
type Format string

const (
	FormatFieldCSV Format = "fieldcsv"
)

// CustomerRecord is a parsed roster row plus the loan principal the
// office has on file for the customer.
type CustomerRecord struct {
	Customer   roster.Customer
	LoanAmount int64
}

type Importer interface {
	Parse(r io.Reader) ([]CustomerRecord, error)
}

type Service struct {
	fieldCSV Importer
}

func NewService() *Service {
	return &Service{
		fieldCSV: NewFieldCSV(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]CustomerRecord, error) {
	var imp Importer

	switch format {
	case FormatFieldCSV:
		imp = s.fieldCSV
	default:
		return nil, fmt.Errorf("unknown roster format: %s", format)
	}

	return imp.Parse(r)
}
