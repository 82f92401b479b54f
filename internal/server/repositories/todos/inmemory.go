package todos

import (
	"context"
	"sort"
	"sync"

	"github.com/todograph/todograph/internal/common"
	"github.com/todograph/todograph/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs.
type InMemoryRepository struct {
	mu    sync.Mutex
	todos map[string]*models.Todo
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{todos: make(map[string]*models.Todo)}
}

func (r *InMemoryRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *todo
	r.todos[todo.ID] = &clone
	return todo, nil
}

func (r *InMemoryRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			clone := *t
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.todos[todo.ID]
	if !ok || existing.OwnerID != todo.OwnerID {
		return common.ErrorNotFound
	}
	existing.Task = todo.Task
	existing.Description = todo.Description
	existing.IsDone = todo.IsDone
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *InMemoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos = make(map[string]*models.Todo)
	return nil
}
