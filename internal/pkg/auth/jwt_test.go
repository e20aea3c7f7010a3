package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/pkg/apperrors"
)

func newService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "srms-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newService(time.Hour)

	token, expiresIn, err := svc.GenerateToken("101", "Aarav Sharma", models.RoleStudent, models.FirstYear)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if expiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int64(time.Hour.Seconds()))
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Subject != "101" {
		t.Errorf("Subject = %q, want 101", claims.Subject)
	}
	if claims.Role != string(models.RoleStudent) {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleStudent)
	}
	if claims.Year != string(models.FirstYear) {
		t.Errorf("Year = %q, want %q", claims.Year, models.FirstYear)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc := newService(-time.Minute)

	token, _, err := svc.GenerateToken("admin", "admin", models.RoleAdmin, "")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("ValidateToken error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := newService(time.Hour).GenerateToken("admin", "admin", models.RoleAdmin, "")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "srms-test",
	})
	if _, err := other.ValidateToken(token); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("ValidateToken error = %v, want ErrTokenInvalid", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid header", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing prefix", "abc.def.ghi", "", true},
		{"empty header", "", "", true},
		{"prefix only", "Bearer ", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractBearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
