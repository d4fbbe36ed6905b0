package export

import (
	"errors"
	"fmt"
)

// Dataset is tabular export content. Every row holds one value per header,
// in header order.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// NewDataset starts an empty dataset with the given columns.
func NewDataset(headers ...string) *Dataset {
	return &Dataset{Headers: headers}
}

// Append adds a row. The value count must match the header count.
func (d *Dataset) Append(values ...string) error {
	if len(values) != len(d.Headers) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(values), len(d.Headers))
	}
	d.Rows = append(d.Rows, values)
	return nil
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return errors.New("dataset has no columns")
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("row %d has %d values, dataset has %d columns", i, len(row), len(d.Headers))
		}
	}
	return nil
}

// Format names a supported export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat normalises a user supplied format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}
