package models

// Admin defines the administrator model based on the 'admins' table.
// Administrators are a small fixed set of privileged accounts; they are
// seeded at startup and never derived from uploads.
type Admin struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Student defines the identity model based on the 'students' table. One
// record per roll number, maintained as a projection of ingested result
// rows: created on first sighting with the credential defaulted to a hash
// of the roll number, then updated (name, year) on later sightings. The
// credential is never touched by reconciliation.
type Student struct {
	RollNo       string  `json:"rollNo" db:"roll_no"`
	Name         string  `json:"name" db:"name"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Year         YearTag `json:"year" db:"year"`
}

// ResultRow is one row of a per-year result table. The column set is not
// known until upload time, so rows are open string-keyed mappings; the
// surrogate "id" key is always present and holds an int64.
type ResultRow map[string]any

// ID returns the surrogate row id, or 0 when absent.
func (r ResultRow) ID() int64 {
	if v, ok := r["id"].(int64); ok {
		return v
	}
	return 0
}
