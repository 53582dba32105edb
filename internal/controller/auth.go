package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist-api/internal/apperr"
	"todolist-api/internal/auth"
	"todolist-api/internal/middleware"
	"todolist-api/pkg/logger"
)

// Auth handles login, token refresh and the current-user endpoint.
type Auth struct {
	users  UserStore
	tokens *auth.TokenService
}

func NewAuth(users UserStore, tokens *auth.TokenService) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// Token exchanges form credentials for a bearer token. Unknown username and
// wrong password fail identically.
func (h *Auth) Token(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
			return
		}
		logger.Error(ctx, "Login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ok, err := auth.VerifyPassword(password, user.Password)
	if err != nil {
		// A stored hash we cannot parse is a server-side defect, not bad credentials.
		logger.Error(ctx, "Password verification failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}

	h.respondToken(c, user.ID.String())
}

// Refresh issues a fresh token for the already-validated bearer. An expired
// token never reaches this handler; the middleware rejects it with 401.
func (h *Auth) Refresh(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.respondToken(c, user.ID.String())
}

// Me returns the user resolved from the bearer token.
func (h *Auth) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": middleware.CurrentUser(c)})
}

func (h *Auth) respondToken(c *gin.Context, subjectID string) {
	token, err := h.tokens.Issue(subjectID)
	if err != nil {
		logger.Error(c.Request.Context(), "Token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token, "tokenType": "bearer"})
}
