package models

import "testing"

func TestParseYearTag(t *testing.T) {
	t.Parallel()

	for _, tag := range YearTags() {
		got, err := ParseYearTag(string(tag))
		if err != nil {
			t.Errorf("ParseYearTag(%q) returned error: %v", tag, err)
		}
		if got != tag {
			t.Errorf("ParseYearTag(%q) = %q", tag, got)
		}
	}

	for _, bad := range []string{"", "fifth_year", "First_Year", "1st_year"} {
		if _, err := ParseYearTag(bad); err == nil {
			t.Errorf("ParseYearTag(%q) accepted an unknown year", bad)
		}
	}
}

func TestResultTable(t *testing.T) {
	t.Parallel()

	if got := FirstYear.ResultTable(); got != "first_year_results" {
		t.Errorf("FirstYear.ResultTable() = %q", got)
	}
	if got := FourthYear.ResultTable(); got != "fourth_year_results" {
		t.Errorf("FourthYear.ResultTable() = %q", got)
	}
}
