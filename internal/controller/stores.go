package controller

import (
	"context"

	"github.com/google/uuid"

	"todolist-api/internal/models"
	"todolist-api/internal/repository"
)

// UserStore is the user directory the handlers call. Implemented by
// repository.Users; tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch repository.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TodoStore is the owner-scoped todo store the handlers call.
type TodoStore interface {
	Create(ctx context.Context, ownerID uuid.UUID, title string, description *string, status models.Status) (*models.ToDo, error)
	List(ctx context.Context, ownerID uuid.UUID, filter repository.TodoFilter) ([]models.ToDo, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, patch repository.TodoPatch) (*models.ToDo, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
