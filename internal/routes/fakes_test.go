package routes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"todolist-api/internal/apperr"
	"todolist-api/internal/auth"
	"todolist-api/internal/models"
	"todolist-api/internal/repository"
)

// In-memory stores mirroring the repository semantics: conflict on taken
// usernames, owner-scoped todo lookups, done_at recompute on update.

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
	order []uuid.UUID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, username, password string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return nil, apperr.ErrConflict
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[user.ID] = user
	s.order = append(s.order, user.ID)
	return user, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.users[id])
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, id uuid.UUID, patch repository.UserUpdate) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if patch.Username != nil && *patch.Username != user.Username {
		for _, u := range s.users {
			if u.ID != id && u.Username == *patch.Username {
				return nil, apperr.ErrConflict
			}
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
	return user, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeTodoStore struct {
	todos map[uuid.UUID]*models.ToDo
	order []uuid.UUID
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: map[uuid.UUID]*models.ToDo{}}
}

func (s *fakeTodoStore) Create(_ context.Context, ownerID uuid.UUID, title string, description *string, status models.Status) (*models.ToDo, error) {
	now := time.Now().UTC()
	todo := &models.ToDo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.todos[todo.ID] = todo
	s.order = append(s.order, todo.ID)
	return todo, nil
}

func (s *fakeTodoStore) List(_ context.Context, ownerID uuid.UUID, filter repository.TodoFilter) ([]models.ToDo, error) {
	var out []models.ToDo
	for _, id := range s.order {
		todo := s.todos[id]
		if todo.UserID != ownerID {
			continue
		}
		if filter.Title != nil && !strings.Contains(todo.Title, *filter.Title) {
			continue
		}
		if filter.Description != nil {
			if todo.Description == nil || !strings.Contains(*todo.Description, *filter.Description) {
				continue
			}
		}
		if filter.Status != nil && todo.Status != *filter.Status {
			continue
		}
		out = append(out, *todo)
	}
	return out, nil
}

func (s *fakeTodoStore) Update(_ context.Context, id, ownerID uuid.UUID, patch repository.TodoPatch) (*models.ToDo, error) {
	todo, ok := s.todos[id]
	if !ok || todo.UserID != ownerID {
		return nil, apperr.ErrNotFound
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
	return todo, nil
}

func (s *fakeTodoStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	todo, ok := s.todos[id]
	if !ok || todo.UserID != ownerID {
		return apperr.ErrNotFound
	}
	delete(s.todos, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
