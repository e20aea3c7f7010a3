package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/arjun/srms/internal/app/models"
	appRepos "github.com/arjun/srms/internal/app/repositories"
	"github.com/arjun/srms/internal/config"
	"github.com/arjun/srms/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	adminRepo := appRepos.NewAdminRepository(dbPool)

	lgr.Info().Str("username", cfg.Seed.AdminUsername).Msg("Checking/Creating default admin account...")

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	// Create is a no-op when the username already exists, so an operator's
	// password change survives restarts.
	err = adminRepo.Create(ctx, &appModels.Admin{
		Username:     cfg.Seed.AdminUsername,
		PasswordHash: hash,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	return nil
}
