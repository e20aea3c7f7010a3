package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/arjun/srms/internal/app/controllers"
	appMigrations "github.com/arjun/srms/internal/app/migrations"
	appRepos "github.com/arjun/srms/internal/app/repositories"
	appRoutes "github.com/arjun/srms/internal/app/routes"
	appServices "github.com/arjun/srms/internal/app/services"
	"github.com/arjun/srms/internal/config"
	"github.com/arjun/srms/internal/db"
	appMiddleware "github.com/arjun/srms/internal/middleware"
	pkgAuth "github.com/arjun/srms/internal/pkg/auth"
	"github.com/arjun/srms/internal/pkg/filestorage"
	"github.com/arjun/srms/internal/pkg/helpers"
	"github.com/arjun/srms/internal/pkg/logger"
	"github.com/arjun/srms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	IngestService     appServices.IngestService
	ResultService     appServices.ResultService
	AuthController    *appControllers.AuthController
	ResultController  *appControllers.ResultController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
	FileStorage       *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, cfg, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 6*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AdminRepository,
		deps.Repos.StudentRepository,
		deps.JWTService,
		lgr,
	)
	deps.IngestService = appServices.NewIngestService(
		deps.Repos.ResultRepository,
		deps.Repos.StudentRepository,
		database,
		lgr,
	)
	deps.ResultService = appServices.NewResultService(deps.Repos.ResultRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ResultController = appControllers.NewResultController(deps.IngestService, deps.ResultService, deps.FileStorage, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.ResultService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ResultController,
		deps.StudentController,
		deps.AuthMiddleware,
	)

	return router
}
