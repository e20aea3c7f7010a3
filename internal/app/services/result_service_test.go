package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arjun/srms/internal/app/ingest"
	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		row  models.ResultRow
		want *float64
	}{
		{
			"mean of numeric subject marks",
			models.ResultRow{"id": int64(1), "roll_no": "101", "name": "Aarav", "math": int64(88), "physics": int64(74)},
			ptr(8.53),
		},
		{
			"values above 100 excluded",
			models.ResultRow{"marks": int64(150), "physics": int64(50)},
			ptr(5.26),
		},
		{
			"negative values excluded",
			models.ResultRow{"marks": int64(-10), "physics": int64(95)},
			ptr(10.0),
		},
		{
			"numeric strings count",
			models.ResultRow{"chemistry": "91"},
			ptr(9.58),
		},
		{
			"boundaries included",
			models.ResultRow{"low": int64(0), "high": int64(100)},
			ptr(5.26),
		},
		{
			"identity columns excluded regardless of case",
			models.ResultRow{"ID": int64(3), "Roll_No": int64(101), "Name": "Diya"},
			nil,
		},
		{
			"no qualifying values",
			models.ResultRow{"remarks": "passed", "grade": "A"},
			nil,
		},
		{
			"empty row",
			models.ResultRow{},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.row)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.InDelta(t, *tt.want, *got, 0.001)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }

type MockResultQueryStore struct {
	mock.Mock
}

func (m *MockResultQueryStore) Schema(ctx context.Context, year models.YearTag) (*ingest.TableSchema, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingest.TableSchema), args.Error(1)
}

func (m *MockResultQueryStore) List(ctx context.Context, year models.YearTag, rollQuery, nameQuery string) ([]models.ResultRow, error) {
	args := m.Called(ctx, year, rollQuery, nameQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResultRow), args.Error(1)
}

func (m *MockResultQueryStore) GetByID(ctx context.Context, year models.YearTag, id int64) (models.ResultRow, error) {
	args := m.Called(ctx, year, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ResultRow), args.Error(1)
}

func (m *MockResultQueryStore) GetByRoll(ctx context.Context, year models.YearTag, roll string) (models.ResultRow, error) {
	args := m.Called(ctx, year, roll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ResultRow), args.Error(1)
}

func (m *MockResultQueryStore) DeleteRow(ctx context.Context, year models.YearTag, id int64) error {
	return m.Called(ctx, year, id).Error(0)
}

func (m *MockResultQueryStore) DropTable(ctx context.Context, year models.YearTag) error {
	return m.Called(ctx, year).Error(0)
}

func TestListResultsMissingTable(t *testing.T) {
	store := new(MockResultQueryStore)
	store.On("Schema", mock.Anything, models.FirstYear).Return(nil, apperrors.ErrResultTableMissing)

	svc := NewResultService(store, zerolog.Nop())

	resp, err := svc.ListResults(context.Background(), models.FirstYear, "", "")
	assert.NoError(t, err)
	assert.Equal(t, models.FirstYear, resp.Year)
	assert.Empty(t, resp.Columns)
	assert.Empty(t, resp.Rows)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListResults(t *testing.T) {
	store := new(MockResultQueryStore)
	schema := &ingest.TableSchema{
		Table: "second_year_results",
		Columns: []ingest.ColumnDef{
			{Name: "roll_no", Type: ingest.TypeNumeric},
			{Name: "name", Type: ingest.TypeText},
		},
	}
	rows := []models.ResultRow{{"id": int64(1), "roll_no": int64(101), "name": "Aarav"}}

	store.On("Schema", mock.Anything, models.SecondYear).Return(schema, nil)
	store.On("List", mock.Anything, models.SecondYear, "10", "").Return(rows, nil)

	svc := NewResultService(store, zerolog.Nop())

	resp, err := svc.ListResults(context.Background(), models.SecondYear, "10", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"roll_no", "name"}, resp.Columns)
	assert.Len(t, resp.Rows, 1)
	store.AssertExpectations(t)
}

func TestStudentResult(t *testing.T) {
	store := new(MockResultQueryStore)
	row := models.ResultRow{"id": int64(7), "roll_no": int64(101), "name": "Diya", "math": int64(95)}
	store.On("GetByRoll", mock.Anything, models.ThirdYear, "101").Return(row, nil)

	svc := NewResultService(store, zerolog.Nop())

	resp, err := svc.StudentResult(context.Background(), "101", models.ThirdYear)
	assert.NoError(t, err)
	assert.Equal(t, models.ThirdYear, resp.Year)
	if assert.NotNil(t, resp.Score) {
		assert.InDelta(t, 10.0, *resp.Score, 0.001)
	}
	store.AssertExpectations(t)
}

func TestStudentResultNotFound(t *testing.T) {
	store := new(MockResultQueryStore)
	store.On("GetByRoll", mock.Anything, models.FourthYear, "999").Return(nil, apperrors.ErrResultNotFound)

	svc := NewResultService(store, zerolog.Nop())

	_, err := svc.StudentResult(context.Background(), "999", models.FourthYear)
	assert.ErrorIs(t, err, apperrors.ErrResultNotFound)
}
