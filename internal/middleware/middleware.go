package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todolist-api/internal/apperr"
	"todolist-api/internal/auth"
	"todolist-api/internal/models"
	"todolist-api/pkg/logger"
)

const userKey = "currentUser"

const credentialsMessage = "Could not validate credentials"

// UserResolver looks up the token subject. Satisfied by repository.Users.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequestLogger attaches a per-request id to the request context logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithRequestID(c.Request.Context(), uuid.NewString())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireUser validates the bearer token and resolves its subject to a user.
// Any failure, including a subject that no longer exists, is a 401; the
// response never distinguishes a bad token from a deleted user.
func RequireUser(tokens *auth.TokenService, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, tokens, users)
		if err != nil {
			abortResolveError(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalUser resolves the bearer token only when an Authorization header is
// present; anonymous requests pass through. A presented token must be valid.
func OptionalUser(tokens *auth.TokenService, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		user, err := resolveUser(c, tokens, users)
		if err != nil {
			abortResolveError(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser or OptionalUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func resolveUser(c *gin.Context, tokens *auth.TokenService, users UserResolver) (*models.User, error) {
	ctx := c.Request.Context()
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		logger.Debug(ctx, "Missing or invalid Authorization header")
		return nil, apperr.ErrUnauthorized
	}
	subject, err := tokens.Validate(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		logger.Debug(ctx, "Token validation failed", "error", err)
		return nil, err
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	user, err := users.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func abortResolveError(c *gin.Context, err error) {
	if errors.Is(err, apperr.ErrUnauthorized) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": credentialsMessage})
		return
	}
	logger.Error(c.Request.Context(), "User resolution failed", "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
