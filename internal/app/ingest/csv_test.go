package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Roll No,Name, Math ,Physics",
		"101,Aarav Sharma,88,74",
		"102, Diya Patel ,79,",
		"103,Rohan Gupta,91",
	}, "\n")

	parsed, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	wantCols := []string{"Roll_No", "Name", "Math", "Physics"}
	if len(parsed.Columns) != len(wantCols) {
		t.Fatalf("got %d columns, want %d", len(parsed.Columns), len(wantCols))
	}
	for i, col := range wantCols {
		if parsed.Columns[i] != col {
			t.Errorf("column %d = %q, want %q", i, parsed.Columns[i], col)
		}
	}

	if len(parsed.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(parsed.Rows))
	}

	if got := parsed.Rows[1]["Name"]; got != "Diya Patel" {
		t.Errorf("row cell not trimmed: %q", got)
	}

	// An empty cell is absent from the row map.
	if _, ok := parsed.Rows[1]["Physics"]; ok {
		t.Error("empty cell should be omitted from the row map")
	}

	// A short record has no entry for the missing trailing column.
	if _, ok := parsed.Rows[2]["Physics"]; ok {
		t.Error("short record should omit missing trailing columns")
	}
}

func TestParseCSVStripsBOM(t *testing.T) {
	t.Parallel()

	input := "\ufeff" + "roll_no,name\n1,Aditi"
	parsed, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if parsed.Columns[0] != "roll_no" {
		t.Errorf("first column = %q, want roll_no", parsed.Columns[0])
	}
}

func TestParseCSVEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"no content", ""},
		{"header only", "roll_no,name"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCSV(strings.NewReader(tt.input))
			if !errors.Is(err, ErrEmptyFile) {
				t.Errorf("ParseCSV(%q) error = %v, want ErrEmptyFile", tt.input, err)
			}
		})
	}
}
