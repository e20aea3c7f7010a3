package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost for all stored credentials, including the
// roll-number default assigned to freshly reconciled students.
const BcryptCost = 12

// HashPassword hashes a plaintext credential.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext credential against a stored hash.
func CheckPassword(password, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
