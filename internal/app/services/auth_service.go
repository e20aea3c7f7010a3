package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/arjun/srms/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	StudentLogin(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error)
}

type adminStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type studentStore interface {
	GetByRoll(ctx context.Context, roll string) (*models.Student, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	admins     adminStore
	students   studentStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(admins adminStore, students studentStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		admins:     admins,
		students:   students,
		jwtService: jwtService,
		logger:     logger,
	}
}

// AdminLogin verifies an admin credential pair and issues an access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *authServiceImpl) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, admin.PasswordHash) {
		s.logger.Warn().Str("username", req.Username).Msg("admin login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(admin.Username, admin.Username, models.RoleAdmin, "")
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        models.RoleAdmin,
	}, nil
}

// StudentLogin verifies a student credential pair and issues an access
// token scoped to the student's year.
func (s *authServiceImpl) StudentLogin(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error) {
	student, err := s.students.GetByRoll(ctx, req.RollNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, student.PasswordHash) {
		s.logger.Warn().Str("roll_no", req.RollNo).Msg("student login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.RollNo, student.Name, models.RoleStudent, student.Year)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        models.RoleStudent,
	}, nil
}
