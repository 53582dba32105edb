package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todolist-api/internal/apperr"
)

// TokenConfig carries the signing secret and token lifetime.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// TokenService issues and validates HS256 bearer tokens carrying a subject id.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{secret: cfg.Secret, ttl: cfg.TTL}
}

// Issue signs a token with claims {sub: subjectID, exp: now + TTL}.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token and returns its subject id. Any failure
// (bad signature, expiry, missing subject) is apperr.ErrUnauthorized.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", apperr.ErrUnauthorized
	}
	return claims.Subject, nil
}
