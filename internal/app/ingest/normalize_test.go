package ingest

import (
	"reflect"
	"testing"
)

func TestNormalizeColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{
			"spaces become underscores",
			[]string{"Roll No", "Student Name"},
			[]string{"Roll_No", "Student_Name"},
		},
		{
			"surrounding whitespace trimmed",
			[]string{"  math  ", "physics"},
			[]string{"math", "physics"},
		},
		{
			"case preserved",
			[]string{"Math", "MATH"},
			[]string{"Math", "MATH"},
		},
		{
			"duplicates get numeric suffixes",
			[]string{"marks", "marks", "marks"},
			[]string{"marks", "marks_1", "marks_2"},
		},
		{
			"suffix collision picks the next free slot",
			[]string{"marks", "marks_1", "marks"},
			[]string{"marks", "marks_1", "marks_2"},
		},
		{
			"internal spaces collapse into duplicates",
			[]string{"roll no", "roll_no"},
			[]string{"roll_no", "roll_no_1"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeColumns(tt.headers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeColumns(%v) = %v, want %v", tt.headers, got, tt.want)
			}
		})
	}
}

func TestLocateRollColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		want    string
		ok      bool
	}{
		{"exact match", []string{"roll_no", "name"}, "roll_no", true},
		{"case insensitive", []string{"Roll_No", "name"}, "Roll_No", true},
		{"suffix match", []string{"student_roll_no", "name"}, "student_roll_no", true},
		{"missing", []string{"roll", "name"}, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := LocateRollColumn(tt.columns)
			if got != tt.want || ok != tt.ok {
				t.Errorf("LocateRollColumn(%v) = (%q, %v), want (%q, %v)", tt.columns, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLocateNameColumn(t *testing.T) {
	t.Parallel()

	got, ok := LocateNameColumn([]string{"roll_no", "Student_Name", "math"})
	if !ok || got != "Student_Name" {
		t.Errorf("LocateNameColumn = (%q, %v), want (Student_Name, true)", got, ok)
	}

	if _, ok := LocateNameColumn([]string{"roll_no", "math"}); ok {
		t.Error("LocateNameColumn found a name column where none exists")
	}
}

func TestLocateRollBearingColumn(t *testing.T) {
	t.Parallel()

	got, ok := LocateRollBearingColumn([]string{"id", "RollNumber", "name"})
	if !ok || got != "RollNumber" {
		t.Errorf("LocateRollBearingColumn = (%q, %v), want (RollNumber, true)", got, ok)
	}
}
