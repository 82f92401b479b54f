package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/todograph/todograph/internal/common"
	"github.com/todograph/todograph/internal/server/models"
	"github.com/todograph/todograph/internal/server/repositories/repomanager"
)

// TodoService enforces ownership rules and the merged update/toggle protocol
// over the todo store. Every operation requires a resolved user id; an empty
// id fails with common.ErrorUnauthenticated before touching the store.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// UpdateParams carries the optional fields of the merged update. An empty
// string means "not supplied", matching the wire contract where empty
// optional arguments are ignored.
type UpdateParams struct {
	Task        string
	Description string
	IsMark      bool
}

// Create persists a new todo owned by userID with IsDone false. A task that
// trims to empty fails with common.ErrorValidation.
func (s *TodoService) Create(ctx context.Context, userID, task, description string) (*models.Todo, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}
	if strings.TrimSpace(task) == "" {
		return nil, common.ErrorValidation
	}

	todo := &models.Todo{
		ID:          uuid.NewString(),
		OwnerID:     userID,
		Task:        task,
		Description: description,
		IsDone:      false,
		CreatedAt:   time.Now().UTC(),
	}

	repo := s.repomanager.Todos(s.db)
	return repo.Create(ctx, todo)
}

// GetByID returns the todo with the given id owned by userID. Ownership is
// part of the lookup predicate, so another user's todo is a plain not-found.
func (s *TodoService) GetByID(ctx context.Context, userID, id string) (*models.Todo, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Todos(s.db)
	return repo.GetByIDAndOwner(ctx, id, userID)
}

// ListForUser returns all todos owned by userID in creation order.
func (s *TodoService) ListForUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Todos(s.db)
	return repo.ListByOwner(ctx, userID)
}

// Update applies the merged update/toggle protocol to the todo identified by
// todoID. The branch order is part of the API contract:
//
//  1. the todo must exist and be owned by userID, else not-found;
//  2. IsMark set: flip IsDone, overwrite description if supplied, ignore task;
//  3. otherwise, overwrite whichever of task/description is supplied;
//  4. nothing supplied at all is an invalid argument, not a no-op.
//
// Two concurrent updates to the same todo race at last-write-wins
// granularity; there is no version check.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, p UpdateParams) (*models.Todo, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Todos(s.db)

	todo, err := repo.GetByIDAndOwner(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case p.IsMark:
		todo.IsDone = !todo.IsDone
		if p.Description != "" {
			todo.Description = p.Description
		}
	case p.Task != "" || p.Description != "":
		if p.Task != "" {
			todo.Task = p.Task
		}
		if p.Description != "" {
			todo.Description = p.Description
		}
	default:
		return nil, common.ErrorInvalidArgument
	}

	if err := repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes the todo identified by todoID if userID owns it.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if userID == "" {
		return common.ErrorUnauthenticated
	}

	repo := s.repomanager.Todos(s.db)
	return repo.Delete(ctx, todoID, userID)
}
