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

// AdminRepository handles administrator accounts. Administrators are a
// small fixed set seeded at startup; there is no self-serve registration.
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUsername retrieves an administrator account.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	querySQL, args, err := r.sb.Select("username", "password_hash").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	admin := &models.Admin{}
	err = r.db.QueryRow(ctx, querySQL, args...).Scan(&admin.Username, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning admin row")
		return nil, fmt.Errorf("error getting admin by username: %w", err)
	}
	return admin, nil
}

// Create inserts an administrator account, ignoring an already existing
// username. Used by startup seeding.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`,
		admin.Username, admin.PasswordHash)
	if err != nil {
		logger.Error().Err(err).Str("username", admin.Username).Msg("Error creating admin account")
		return fmt.Errorf("error creating admin account: %w", err)
	}
	return nil
}
