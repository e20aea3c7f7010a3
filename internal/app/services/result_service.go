package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arjun/srms/internal/app/ingest"
	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/pkg/apperrors"
)

// ResultService defines the interface for querying and maintaining result
// tables.
type ResultService interface {
	ListResults(ctx context.Context, year models.YearTag, rollQuery, nameQuery string) (*dto.ResultListResponse, error)
	GetResult(ctx context.Context, year models.YearTag, id int64) (models.ResultRow, error)
	DeleteResult(ctx context.Context, year models.YearTag, id int64) error
	ClearYear(ctx context.Context, year models.YearTag) error
	StudentResult(ctx context.Context, roll string, year models.YearTag) (*dto.StudentResultResponse, error)
}

// resultQueryStore is the slice of ResultRepository the query side needs.
type resultQueryStore interface {
	Schema(ctx context.Context, year models.YearTag) (*ingest.TableSchema, error)
	List(ctx context.Context, year models.YearTag, rollQuery, nameQuery string) ([]models.ResultRow, error)
	GetByID(ctx context.Context, year models.YearTag, id int64) (models.ResultRow, error)
	GetByRoll(ctx context.Context, year models.YearTag, roll string) (models.ResultRow, error)
	DeleteRow(ctx context.Context, year models.YearTag, id int64) error
	DropTable(ctx context.Context, year models.YearTag) error
}

// resultServiceImpl implements the ResultService interface
type resultServiceImpl struct {
	results resultQueryStore
	logger  zerolog.Logger
}

// NewResultService creates a new result service instance
func NewResultService(results resultQueryStore, logger zerolog.Logger) ResultService {
	return &resultServiceImpl{
		results: results,
		logger:  logger,
	}
}

// ListResults returns every row of a year's result table, newest first,
// optionally filtered by roll or name substring. A year whose table was
// never materialized lists as empty rather than failing.
func (s *resultServiceImpl) ListResults(ctx context.Context, year models.YearTag, rollQuery, nameQuery string) (*dto.ResultListResponse, error) {
	schema, err := s.results.Schema(ctx, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrResultTableMissing) {
			return &dto.ResultListResponse{Year: year, Columns: []string{}, Rows: []models.ResultRow{}}, nil
		}
		return nil, err
	}

	rows, err := s.results.List(ctx, year, rollQuery, nameQuery)
	if err != nil {
		return nil, err
	}

	return &dto.ResultListResponse{
		Year:    year,
		Columns: schema.ColumnNames(),
		Rows:    rows,
	}, nil
}

// GetResult fetches a single row by its surrogate id.
func (s *resultServiceImpl) GetResult(ctx context.Context, year models.YearTag, id int64) (models.ResultRow, error) {
	return s.results.GetByID(ctx, year, id)
}

// DeleteResult removes a single row by its surrogate id.
func (s *resultServiceImpl) DeleteResult(ctx context.Context, year models.YearTag, id int64) error {
	if err := s.results.DeleteRow(ctx, year, id); err != nil {
		return err
	}
	s.logger.Info().Str("year", string(year)).Int64("id", id).Msg("result row deleted")
	return nil
}

// ClearYear drops a year's result table entirely. The next upload for the
// year derives a fresh schema.
func (s *resultServiceImpl) ClearYear(ctx context.Context, year models.YearTag) error {
	if err := s.results.DropTable(ctx, year); err != nil {
		return err
	}
	s.logger.Warn().Str("year", string(year)).Msg("result table cleared")
	return nil
}

// StudentResult returns the most recent result row for a roll number in the
// student's own year, together with the derived score.
func (s *resultServiceImpl) StudentResult(ctx context.Context, roll string, year models.YearTag) (*dto.StudentResultResponse, error) {
	row, err := s.results.GetByRoll(ctx, year, roll)
	if err != nil {
		return nil, err
	}
	return &dto.StudentResultResponse{
		Year:   year,
		Result: row,
		Score:  Score(row),
	}, nil
}

// Score derives an aggregate mark from a result row: the mean of every
// numeric value in [0, 100], excluding the id, roll and name columns,
// scaled onto a 10-point band and rounded to two decimals. Rows with no
// qualifying value score nil.
func Score(row models.ResultRow) *float64 {
	var sum float64
	var n int
	for col, raw := range row {
		lower := strings.ToLower(col)
		if lower == "id" || lower == "roll_no" || lower == "name" {
			continue
		}
		v, ok := asFloat(raw)
		if !ok || v < 0 || v > 100 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return nil
	}
	score := math.Round(sum/float64(n)/9.5*100) / 100
	return &score
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case int:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
