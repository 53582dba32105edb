package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todolist-api/internal/apperr"
	"todolist-api/internal/middleware"
	"todolist-api/internal/models"
	"todolist-api/internal/repository"
	"todolist-api/pkg/logger"
)

// Users handles the user directory endpoints.
type Users struct {
	store UserStore
}

func NewUsers(store UserStore) *Users {
	return &Users{store: store}
}

// Create registers a new user. A taken username is 409.
func (h *Users) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	user, err := h.store.Create(ctx, body.Username, body.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Username not available"})
			return
		}
		logger.Error(ctx, "Create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

// List returns all users.
func (h *Users) List(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.store.List(ctx)
	if err != nil {
		logger.Error(ctx, "List users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// Get returns one user by id.
func (h *Users) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	user, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		logger.Error(ctx, "Get user failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// Update applies a partial update to a user record.
func (h *Users) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	if !h.authorizeOwner(c, id) {
		return
	}

	var body struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	user, err := h.store.Update(ctx, id, repository.UserUpdate{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"detail": "Username not available"})
		default:
			logger.Error(ctx, "Update user failed", "error", err, "id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// Delete removes a user and, transactionally, all of their todos.
func (h *Users) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	if !h.authorizeOwner(c, id) {
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		logger.Error(ctx, "Delete user failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// authorizeOwner rejects a mutation on someone else's user record with 403.
// Unlike the todo store's query scoping, this is an explicit ownership check:
// the resource exists, the actor just does not own it. Anonymous requests
// (no bearer presented) pass through.
func (h *Users) authorizeOwner(c *gin.Context, target uuid.UUID) bool {
	actor := middleware.CurrentUser(c)
	if actor != nil && actor.ID != target {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not enough permissions"})
		return false
	}
	return true
}
