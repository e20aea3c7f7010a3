package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/arjun/srms/internal/app/ingest"
	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/db"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/arjun/srms/internal/pkg/auth"
)

// IngestService defines the interface for the upload pipeline: CSV in,
// materialized rows and reconciled identities out.
type IngestService interface {
	UploadCSV(ctx context.Context, year models.YearTag, filename string, file io.Reader) (int, error)
	UpdateRow(ctx context.Context, year models.YearTag, id int64, values map[string]*string) error
}

// resultStore is the slice of ResultRepository the ingestion pipeline needs.
type resultStore interface {
	EnsureTable(ctx context.Context, year models.YearTag, columns []string, sampleRows []map[string]string) error
	InsertBatch(ctx context.Context, tx pgx.Tx, year models.YearTag, columns []string, rows []map[string]string) (int, error)
	Schema(ctx context.Context, year models.YearTag) (*ingest.TableSchema, error)
	GetByID(ctx context.Context, year models.YearTag, id int64) (models.ResultRow, error)
	UpdateRowTx(ctx context.Context, tx pgx.Tx, year models.YearTag, id int64, values map[string]*string) error
}

// identityStore is the slice of StudentRepository reconciliation needs.
type identityStore interface {
	ExistsTx(ctx context.Context, tx pgx.Tx, roll string) (bool, error)
	InsertTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	UpdateSightingTx(ctx context.Context, tx pgx.Tx, roll, name string, year models.YearTag) error
}

// txRunner runs a function inside one database transaction. *db.PostgresDB
// satisfies it.
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// ingestServiceImpl implements the IngestService interface
type ingestServiceImpl struct {
	results  resultStore
	students identityStore
	tx       txRunner
	logger   zerolog.Logger
}

// NewIngestService creates a new ingestion service instance
func NewIngestService(results resultStore, students identityStore, tx txRunner, logger zerolog.Logger) IngestService {
	return &ingestServiceImpl{
		results:  results,
		students: students,
		tx:       tx,
		logger:   logger,
	}
}

// UploadCSV runs the whole ingestion pipeline for one uploaded file:
// validation, normalization, table materialization, transactional batch
// load, and identity reconciliation. Validation precedes every side effect;
// the batch load and reconciliation share one transaction, so a failure in
// either leaves no partial state.
func (s *ingestServiceImpl) UploadCSV(ctx context.Context, year models.YearTag, filename string, file io.Reader) (int, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return 0, apperrors.NewValidationError("only CSV files are allowed")
	}

	parsed, err := ingest.ParseCSV(file)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyFile) {
			return 0, apperrors.NewValidationError("CSV file is empty")
		}
		return 0, apperrors.NewValidationError(fmt.Sprintf("failed to read CSV: %v", err))
	}

	rollCol, ok := ingest.LocateRollColumn(parsed.Columns)
	if !ok {
		return 0, apperrors.NewValidationError("CSV must include a 'roll_no' column")
	}
	nameCol, ok := ingest.LocateNameColumn(parsed.Columns)
	if !ok {
		return 0, apperrors.NewValidationError("CSV must include a 'name' column")
	}

	if err := s.results.EnsureTable(ctx, year, parsed.Columns, parsed.Rows); err != nil {
		return 0, err
	}

	var count int
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		count, err = s.results.InsertBatch(ctx, tx, year, parsed.Columns, parsed.Rows)
		if err != nil {
			return err
		}
		return s.reconcile(ctx, tx, parsed.Rows, rollCol, nameCol, year)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("year", string(year)).
		Int("rows", count).
		Msg("CSV batch ingested")
	return count, nil
}

// reconcile upserts one identity per row carrying a non-empty roll and
// name. Fresh identities get a credential defaulted to a hash of the roll
// number; existing ones only have name and year refreshed, so re-uploading
// the same pair converges after the first creation.
func (s *ingestServiceImpl) reconcile(ctx context.Context, tx pgx.Tx, rows []map[string]string, rollCol, nameCol string, year models.YearTag) error {
	for _, row := range rows {
		roll := strings.TrimSpace(row[rollCol])
		name := strings.TrimSpace(row[nameCol])
		if roll == "" || name == "" {
			continue
		}

		exists, err := s.students.ExistsTx(ctx, tx, roll)
		if err != nil {
			return err
		}
		if exists {
			if err := s.students.UpdateSightingTx(ctx, tx, roll, name, year); err != nil {
				return err
			}
			continue
		}

		hash, err := auth.HashPassword(roll)
		if err != nil {
			return fmt.Errorf("error hashing default credential: %w", err)
		}
		err = s.students.InsertTx(ctx, tx, &models.Student{
			RollNo:       roll,
			Name:         name,
			PasswordHash: hash,
			Year:         year,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateRow edits a single result row and re-reconciles its identity with a
// batch of one, in the same transaction as the row update.
func (s *ingestServiceImpl) UpdateRow(ctx context.Context, year models.YearTag, id int64, values map[string]*string) error {
	schema, err := s.results.Schema(ctx, year)
	if err != nil {
		return err
	}

	existing, err := s.results.GetByID(ctx, year, id)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.results.UpdateRowTx(ctx, tx, year, id, values); err != nil {
			return err
		}

		columns := schema.ColumnNames()
		rollCol, hasRoll := ingest.LocateRollBearingColumn(columns)
		nameCol, hasName := ingest.LocateNameColumn(columns)
		if !hasRoll || !hasName {
			return nil
		}

		row := map[string]string{
			rollCol: mergedValue(values, existing, rollCol),
			nameCol: mergedValue(values, existing, nameCol),
		}
		return s.reconcile(ctx, tx, []map[string]string{row}, rollCol, nameCol, year)
	})
}

// mergedValue resolves a column's post-edit value: the submitted one when
// present and non-empty, otherwise whatever the row already held.
func mergedValue(values map[string]*string, existing models.ResultRow, col string) string {
	if v, ok := values[col]; ok && v != nil && *v != "" {
		return *v
	}
	if v, ok := existing[col]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
