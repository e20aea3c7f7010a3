package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyFile is returned when the CSV has no header or no data rows.
var ErrEmptyFile = errors.New("csv file is empty")

// ParsedFile is an upload parsed into an ordered column list plus row
// mappings keyed by normalized column name. Empty cells are omitted from
// the row map, so an absent key and an empty value are the same thing: null.
type ParsedFile struct {
	// RawHeaders as read from the file, trimmed.
	RawHeaders []string
	// Columns are the normalized storage identifiers, aligned with RawHeaders.
	Columns []string
	// Rows in input order.
	Rows []map[string]string
}

// ParseCSV reads a whole CSV upload into a ParsedFile. Cells are trimmed, a
// UTF-8 BOM on the first header is stripped, and records shorter than the
// header are padded with nulls. Records longer than the header have their
// extra fields dropped.
func ParseCSV(r io.Reader) (*ParsedFile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	hdr, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	raw := make([]string, len(hdr))
	for i, h := range hdr {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		raw[i] = strings.TrimSpace(h)
	}
	columns := NormalizeColumns(raw)

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(columns))
		for i, c := range columns {
			if i >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[i])
			if v == "" {
				continue
			}
			row[c] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return &ParsedFile{RawHeaders: raw, Columns: columns, Rows: rows}, nil
}
