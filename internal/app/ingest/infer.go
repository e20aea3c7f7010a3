// Package ingest implements the CSV-to-schema half of the upload pipeline:
// header normalization, column type inference, CSV parsing into column-keyed
// row mappings, and the per-table schema descriptor.
//
// Design constraints:
//   - Inference is best-effort over a bounded sample and must never fail.
//   - Everything here is pure and side-effect free; table creation and row
//     loading live in the repositories.
package ingest

import "strconv"

// ColumnType is the storage type inferred for a CSV column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeNumeric
)

// typeSampleLimit bounds how many non-empty values are examined per column.
const typeSampleLimit = 50

func (t ColumnType) String() string {
	if t == TypeNumeric {
		return "numeric"
	}
	return "text"
}

// SQLType maps a ColumnType to its Postgres column type.
func (t ColumnType) SQLType() string {
	if t == TypeNumeric {
		return "BIGINT"
	}
	return "TEXT"
}

// InferColumnType classifies a column from its sampled values. A column is
// Numeric only when every examined non-empty value parses as a base-10
// integer; any failure, or an all-empty sample, falls back to Text, the
// permissive type for unknown future values. Floats and dates are not
// inferred: "72.5" classifies as Text.
func InferColumnType(samples []string) ColumnType {
	seen := 0
	for _, v := range samples {
		if v == "" {
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return TypeText
		}
		seen++
		if seen >= typeSampleLimit {
			break
		}
	}
	if seen == 0 {
		return TypeText
	}
	return TypeNumeric
}
