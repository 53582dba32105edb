package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todolist-api/internal/apperr"
	"todolist-api/internal/models"
	"todolist-api/pkg/logger"
)

const todoColumns = `id, title, description, status, done_at, user_id, created_at, updated_at`

// Todos is the todo store backed by Postgres. Every read and mutation is
// scoped to the owning user.
type Todos struct {
	db *sqlx.DB
}

func NewTodos(db *sqlx.DB) *Todos {
	return &Todos{db: db}
}

// TodoFilter narrows List. Title and Description are case-sensitive substring
// matches, Status is exact; nil fields impose no constraint.
type TodoFilter struct {
	Title       *string
	Description *string
	Status      *models.Status
}

// TodoPatch is a partial update; nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Status      *models.Status
}

// Create inserts a todo for the owner.
func (r *Todos) Create(ctx context.Context, ownerID uuid.UUID, title string, description *string, status models.Status) (*models.ToDo, error) {
	now := time.Now().UTC()
	todo := models.ToDo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO todos (id, title, description, status, done_at, user_id, created_at, updated_at)
		 VALUES (:id, :title, :description, :status, :done_at, :user_id, :created_at, :updated_at)`, &todo)
	if err != nil {
		logger.Error(ctx, "Repository create todo failed", "error", err)
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return &todo, nil
}

// List returns the owner's todos matching the filter, in creation order.
func (r *Todos) List(ctx context.Context, ownerID uuid.UUID, filter TodoFilter) ([]models.ToDo, error) {
	query, args, err := buildListQuery(ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("build todo query: %w", err)
	}
	var todos []models.ToDo
	if err := r.db.SelectContext(ctx, &todos, query, args...); err != nil {
		logger.Error(ctx, "Repository list todos failed", "error", err)
		return nil, fmt.Errorf("select todos: %w", err)
	}
	return todos, nil
}

// Update applies the provided fields to the owner's todo. A miss, including an
// id that exists under a different owner, is apperr.ErrNotFound. After the
// patch, done_at is recomputed from the resulting status no matter which
// fields changed.
func (r *Todos) Update(ctx context.Context, id, ownerID uuid.UUID, patch TodoPatch) (*models.ToDo, error) {
	todo, err := r.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = patch.Description
	}
	if patch.Status != nil {
		todo.Status = *patch.Status
	}

	now := time.Now().UTC()
	if todo.Status == models.StatusDone {
		todo.DoneAt = &now
	} else {
		todo.DoneAt = nil
	}
	todo.UpdatedAt = now

	_, err = r.db.NamedExecContext(ctx,
		`UPDATE todos SET title = :title, description = :description, status = :status,
		 done_at = :done_at, updated_at = :updated_at
		 WHERE id = :id AND user_id = :user_id`, todo)
	if err != nil {
		logger.Error(ctx, "Repository update todo failed", "error", err, "id", id)
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// Delete removes the owner's todo; a miss is apperr.ErrNotFound.
func (r *Todos) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		logger.Error(ctx, "Repository delete todo failed", "error", err, "id", id)
		return fmt.Errorf("delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *Todos) getOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.ToDo, error) {
	var todo models.ToDo
	err := r.db.GetContext(ctx, &todo,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository get todo failed", "error", err, "id", id)
		return nil, fmt.Errorf("select todo: %w", err)
	}
	return &todo, nil
}

func buildListQuery(ownerID uuid.UUID, filter TodoFilter) (string, []interface{}, error) {
	q := sq.Select(todoColumns).
		From("todos").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at").
		PlaceholderFormat(sq.Dollar)

	if filter.Title != nil {
		q = q.Where(sq.Like{"title": "%" + *filter.Title + "%"})
	}
	if filter.Description != nil {
		q = q.Where(sq.Like{"description": "%" + *filter.Description + "%"})
	}
	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": *filter.Status})
	}
	return q.ToSql()
}
