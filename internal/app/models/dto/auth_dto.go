package dto

import "github.com/arjun/srms/internal/app/models"

// AdminLoginRequest represents administrator login data
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginRequest represents student login data. Students authenticate
// with their roll number; the password defaults to the roll number until
// changed.
type StudentLoginRequest struct {
	RollNo   string `json:"rollNo" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64       `json:"expiresIn"`
	Role        models.Role `json:"role" example:"ADMIN"`
}
