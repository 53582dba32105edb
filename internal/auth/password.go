package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"todolist-api/internal/apperr"
)

// HashPassword returns a salted bcrypt hash of plain. Hashing the same input
// twice yields different strings; the output embeds algorithm, cost and salt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword checks plain against a stored hash. A mismatch is (false, nil);
// a hash that is not a recognized bcrypt string is apperr.ErrMalformedHash.
func VerifyPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", apperr.ErrMalformedHash, err)
	}
}
