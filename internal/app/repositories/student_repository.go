package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/arjun/srms/internal/pkg/logger"
)

// StudentRepository handles the roll-number-keyed identity table maintained
// as a projection of ingested result rows.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByRoll retrieves a student identity by exact roll number.
func (r *StudentRepository) GetByRoll(ctx context.Context, roll string) (*models.Student, error) {
	querySQL, args, err := r.sb.Select("roll_no", "name", "password_hash", "year").
		From("students").
		Where(squirrel.Eq{"roll_no": roll}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, querySQL, args...).
		Scan(&student.RollNo, &student.Name, &student.PasswordHash, &student.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("roll", roll).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by roll: %w", err)
	}
	return student, nil
}

// ExistsTx checks for an identity inside the caller's transaction.
func (r *StudentRepository) ExistsTx(ctx context.Context, tx pgx.Tx, roll string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE roll_no = $1)`, roll).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// InsertTx creates a fresh identity inside the caller's transaction. The
// credential hash is computed by the caller (defaulted to the roll number at
// first sighting) and never touched again by reconciliation. A concurrent
// insert of the same roll is tolerated: last-committed sighting wins via the
// ON CONFLICT update of name and year only.
func (r *StudentRepository) InsertTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO students (roll_no, name, password_hash, year) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (roll_no) DO UPDATE SET name = EXCLUDED.name, year = EXCLUDED.year`,
		student.RollNo, student.Name, student.PasswordHash, student.Year)
	if err != nil {
		logger.Error().Err(err).Str("roll", student.RollNo).Msg("Error inserting student identity")
		return fmt.Errorf("error inserting student identity: %w", err)
	}
	return nil
}

// UpdateSightingTx refreshes name and year for an existing identity inside
// the caller's transaction. The stored credential is left alone.
func (r *StudentRepository) UpdateSightingTx(ctx context.Context, tx pgx.Tx, roll, name string, year models.YearTag) error {
	_, err := tx.Exec(ctx,
		`UPDATE students SET name = $1, year = $2 WHERE roll_no = $3`,
		name, year, roll)
	if err != nil {
		logger.Error().Err(err).Str("roll", roll).Msg("Error updating student identity")
		return fmt.Errorf("error updating student identity: %w", err)
	}
	return nil
}
