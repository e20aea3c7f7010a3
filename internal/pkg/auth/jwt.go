package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// Claims defines JWT token content. Subject carries the admin username or
// the student roll number; Year is set only for students.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	Year string `json:"year,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed access token for an admin or a student.
func (s *JWTService) GenerateToken(subject, name string, role models.Role, year models.YearTag) (token string, expiresIn int64, err error) {
	now := time.Now()
	claims := &Claims{
		Role: string(role),
		Name: name,
		Year: string(year),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, int64(s.config.AccessTokenExp.Seconds()), nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header.
func ExtractBearerToken(authHeader string) (string, error) {
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return "", apperrors.ErrTokenInvalid
	}
	return token, nil
}
