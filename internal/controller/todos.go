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

// Todos handles the todo endpoints. All of them run behind RequireUser and
// operate only on the acting user's items.
type Todos struct {
	store TodoStore
}

func NewTodos(store TodoStore) *Todos {
	return &Todos{store: store}
}

// Create adds a todo for the acting user. Status defaults to "todo".
func (h *Todos) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	var body struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	status := models.StatusTodo
	if body.Status != nil {
		parsed, err := models.ParseStatus(*body.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
			return
		}
		status = parsed
	}

	todo, err := h.store.Create(ctx, user.ID, body.Title, body.Description, status)
	if err != nil {
		logger.Error(ctx, "Create todo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": todo})
}

// List returns the acting user's todos, narrowed by the optional title,
// description and status query filters.
func (h *Todos) List(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	var filter repository.TodoFilter
	if title, ok := c.GetQuery("title"); ok {
		filter.Title = &title
	}
	if description, ok := c.GetQuery("description"); ok {
		filter.Description = &description
	}
	if raw, ok := c.GetQuery("status"); ok {
		status, err := models.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
			return
		}
		filter.Status = &status
	}

	todos, err := h.store.List(ctx, user.ID, filter)
	if err != nil {
		logger.Error(ctx, "List todos failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if todos == nil {
		todos = []models.ToDo{}
	}
	c.JSON(http.StatusOK, gin.H{"data": todos})
}

// Patch applies a partial update to one of the acting user's todos.
func (h *Todos) Patch(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	patch := repository.TodoPatch{Title: body.Title, Description: body.Description}
	if body.Status != nil {
		status, err := models.ParseStatus(*body.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
			return
		}
		patch.Status = &status
	}

	todo, err := h.store.Update(ctx, id, user.ID, patch)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
			return
		}
		logger.Error(ctx, "Patch todo failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": todo})
}

// Delete removes one of the acting user's todos.
func (h *Todos) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}

	if err := h.store.Delete(ctx, id, user.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
			return
		}
		logger.Error(ctx, "Delete todo failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task has been deleted successfully."})
}
