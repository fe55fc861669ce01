package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/chunkgest/internal/section"
)

// CSVParser handles CSV files. The header row labels every cell, and rows
// come out batched as table sections.
type CSVParser struct {
	BatchSize int
}

const defaultCSVBatch = 20

func (p *CSVParser) Parse(r io.Reader, filename string) ([]section.Section, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	batch := p.BatchSize
	if batch <= 0 {
		batch = defaultCSVBatch
	}
	headers := records[0]
	dataRows := records[1:]

	var secs []section.Section
	for i := 0; i < len(dataRows); i += batch {
		end := i + batch
		if end > len(dataRows) {
			end = len(dataRows)
		}
		var text strings.Builder
		for _, row := range dataRows[i:end] {
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			for j, cell := range row {
				if j > 0 {
					text.WriteString(", ")
				}
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
			}
		}
		secs = append(secs, section.WithLayout(text.String(), "table"))
	}
	return secs, nil
}
