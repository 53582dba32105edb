package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todolist-api/internal/apperr"
	"todolist-api/internal/auth"
	"todolist-api/internal/models"
	"todolist-api/pkg/logger"
)

const userColumns = `id, username, password, created_at, updated_at`

// Users is the user directory backed by Postgres.
type Users struct {
	db *sqlx.DB
}

func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Password *string
}

// Create registers a user. A taken username is apperr.ErrConflict; the
// uniqueness check is an explicit existence query, not a constraint catch.
func (r *Users) Create(ctx context.Context, username, password string) (*models.User, error) {
	taken, err := r.usernameTaken(ctx, username, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrConflict
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = r.db.NamedExecContext(ctx,
		`INSERT INTO users (id, username, password, created_at, updated_at)
		 VALUES (:id, :username, :password, :created_at, :updated_at)`, &user)
	if err != nil {
		logger.Error(ctx, "Repository create user failed", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

// GetByID returns a user or apperr.ErrNotFound.
func (r *Users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository get user failed", "error", err, "id", id)
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// GetByUsername returns a user or apperr.ErrNotFound.
func (r *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository get user by username failed", "error", err)
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// List returns all users in creation order.
func (r *Users) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		logger.Error(ctx, "Repository list users failed", "error", err)
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// Update applies the provided fields. A username change re-checks uniqueness
// excluding the user itself; a provided password is re-hashed.
func (r *Users) Update(ctx context.Context, id uuid.UUID, patch UserUpdate) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := r.usernameTaken(ctx, *patch.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrConflict
		}
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	user.UpdatedAt = time.Now().UTC()

	_, err = r.db.NamedExecContext(ctx,
		`UPDATE users SET username = :username, password = :password, updated_at = :updated_at
		 WHERE id = :id`, user)
	if err != nil {
		logger.Error(ctx, "Repository update user failed", "error", err, "id", id)
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user and all of their todos in one transaction. The
// cascade is explicit: children first, then the parent row.
func (r *Users) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE user_id = $1`, id); err != nil {
		logger.Error(ctx, "Repository delete owned todos failed", "error", err, "id", id)
		return fmt.Errorf("delete owned todos: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository delete user failed", "error", err, "id", id)
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return tx.Commit()
}

func (r *Users) usernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := r.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`,
		username, exclude)
	if err != nil {
		logger.Error(ctx, "Repository username check failed", "error", err)
		return false, fmt.Errorf("check username: %w", err)
	}
	return taken, nil
}
