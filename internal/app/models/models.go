package models

import "fmt"

// Role types used in JWT claims and route guards
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// YearTag identifies an academic cohort. The set is closed: result tables are
// only ever created for these four tags, so free-form strings are rejected at
// the route boundary via ParseYearTag.
type YearTag string

const (
	FirstYear  YearTag = "first_year"
	SecondYear YearTag = "second_year"
	ThirdYear  YearTag = "third_year"
	FourthYear YearTag = "fourth_year"
)

// YearTags returns all valid year tags in cohort order.
func YearTags() []YearTag {
	return []YearTag{FirstYear, SecondYear, ThirdYear, FourthYear}
}

// ParseYearTag validates a raw year string against the closed tag set.
func ParseYearTag(s string) (YearTag, error) {
	switch YearTag(s) {
	case FirstYear, SecondYear, ThirdYear, FourthYear:
		return YearTag(s), nil
	}
	return "", fmt.Errorf("invalid year tag: %q", s)
}

// ResultTable returns the name of the per-year result table.
// The name is derived deterministically so re-uploads for a year always
// target the same table.
func (y YearTag) ResultTable() string {
	return string(y) + "_results"
}
