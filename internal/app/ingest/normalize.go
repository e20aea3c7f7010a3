package ingest

import (
	"fmt"
	"strings"
)

// NormalizeColumns maps raw CSV headers to storage-safe, unique identifiers.
// Rules, applied in header order: trim whitespace, replace internal spaces
// with underscores, and suffix collisions with the lowest unused _1, _2, …
// No case folding happens here; "Roll No" and "roll no" stay distinct.
func NormalizeColumns(headers []string) []string {
	out := make([]string, 0, len(headers))
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		name := strings.ReplaceAll(strings.TrimSpace(h), " ", "_")
		if seen[name] {
			i := 1
			for seen[fmt.Sprintf("%s_%d", name, i)] {
				i++
			}
			name = fmt.Sprintf("%s_%d", name, i)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// LocateRollColumn finds the roll-number column among normalized names:
// the first one that case-insensitively equals or ends with "roll_no".
func LocateRollColumn(columns []string) (string, bool) {
	return locateBySuffix(columns, "roll_no")
}

// LocateNameColumn finds the display-name column among normalized names:
// the first one that case-insensitively equals or ends with "name".
func LocateNameColumn(columns []string) (string, bool) {
	return locateBySuffix(columns, "name")
}

func locateBySuffix(columns []string, suffix string) (string, bool) {
	for _, c := range columns {
		lc := strings.ToLower(c)
		if lc == suffix || strings.HasSuffix(lc, suffix) {
			return c, true
		}
	}
	return "", false
}

// LocateRollBearingColumn is the looser match used when reading a student's
// own row back: any column whose name contains "roll", case-insensitively.
// Uploads are validated with LocateRollColumn; this exists because a table
// created by an earlier version of the uploader may carry a differently
// suffixed roll header.
func LocateRollBearingColumn(columns []string) (string, bool) {
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c), "roll") {
			return c, true
		}
	}
	return "", false
}
