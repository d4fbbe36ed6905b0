package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes datasets as RFC 4180 CSV.
type CSVExporter struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// NewCSVExporter builds a comma-separated exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Comma: ','}
}

// Render encodes the header line followed by every row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if e.Comma != 0 {
		w.Comma = e.Comma
	}
	if err := w.WriteAll(append([][]string{data.Headers}, data.Rows...)); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	return buf.Bytes(), nil
}
