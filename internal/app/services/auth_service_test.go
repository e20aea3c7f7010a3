package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/arjun/srms/internal/pkg/auth"
)

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

type MockStudentStore struct {
	mock.Mock
}

func (m *MockStudentStore) GetByRoll(ctx context.Context, roll string) (*models.Student, error) {
	args := m.Called(ctx, roll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "srms-test",
	})
}

func TestAdminLogin(t *testing.T) {
	hash, err := auth.HashPassword("admin123")
	assert.NoError(t, err)

	admins := new(MockAdminStore)
	admins.On("GetByUsername", mock.Anything, "admin").Return(&models.Admin{
		Username:     "admin",
		PasswordHash: hash,
	}, nil)

	jwtService := newTestJWTService()
	svc := NewAuthService(admins, new(MockStudentStore), jwtService, zerolog.Nop())

	resp, err := svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("admin123")
	assert.NoError(t, err)

	admins := new(MockAdminStore)
	admins.On("GetByUsername", mock.Anything, "admin").Return(&models.Admin{
		Username:     "admin",
		PasswordHash: hash,
	}, nil)

	svc := NewAuthService(admins, new(MockStudentStore), newTestJWTService(), zerolog.Nop())

	_, err = svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminLoginUnknownUser(t *testing.T) {
	admins := new(MockAdminStore)
	admins.On("GetByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrAdminNotFound)

	svc := NewAuthService(admins, new(MockStudentStore), newTestJWTService(), zerolog.Nop())

	_, err := svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestStudentLogin(t *testing.T) {
	hash, err := auth.HashPassword("101")
	assert.NoError(t, err)

	students := new(MockStudentStore)
	students.On("GetByRoll", mock.Anything, "101").Return(&models.Student{
		RollNo:       "101",
		Name:         "Aarav Sharma",
		PasswordHash: hash,
		Year:         models.SecondYear,
	}, nil)

	jwtService := newTestJWTService()
	svc := NewAuthService(new(MockAdminStore), students, jwtService, zerolog.Nop())

	resp, err := svc.StudentLogin(context.Background(), &dto.StudentLoginRequest{
		RollNo:   "101",
		Password: "101",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.Role)

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "101", claims.Subject)
	assert.Equal(t, "Aarav Sharma", claims.Name)
	assert.Equal(t, string(models.SecondYear), claims.Year)
}

func TestStudentLoginUnknownRoll(t *testing.T) {
	students := new(MockStudentStore)
	students.On("GetByRoll", mock.Anything, "999").Return(nil, apperrors.ErrStudentNotFound)

	svc := NewAuthService(new(MockAdminStore), students, newTestJWTService(), zerolog.Nop())

	_, err := svc.StudentLogin(context.Background(), &dto.StudentLoginRequest{
		RollNo:   "999",
		Password: "999",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
