package dto

import "github.com/arjun/srms/internal/app/models"

// UploadResponse reports a successful CSV ingestion.
type UploadResponse struct {
	Year          models.YearTag `json:"year" example:"first_year"`
	RowsProcessed int            `json:"rowsProcessed" example:"120"`
}

// ResultListResponse carries all rows for a year plus the authoritative
// column order, which clients need because rows are open mappings.
type ResultListResponse struct {
	Year    models.YearTag     `json:"year" example:"first_year"`
	Columns []string           `json:"columns"`
	Rows    []models.ResultRow `json:"rows"`
}

// UpdateResultRequest is a single-row edit: a mapping from column name to
// new value. Nil or empty values clear the cell. Columns not in the table
// schema are ignored.
type UpdateResultRequest struct {
	Values map[string]*string `json:"values" binding:"required"`
}

// StudentResultResponse is a student's own result row plus the derived
// 10-point score. Score is absent when no column value qualifies.
type StudentResultResponse struct {
	Year   models.YearTag   `json:"year" example:"first_year"`
	Result models.ResultRow `json:"result"`
	Score  *float64         `json:"score,omitempty" example:"8.68"`
}
