package todos

import (
	"context"

	"github.com/todograph/todograph/internal/server/models"
)

// Repository is the todo store contract. Lookups and deletes fold ownership
// into the predicate: a todo owned by someone else is indistinguishable from
// a missing one.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id, ownerID string) error
	DeleteAll(ctx context.Context) error
}
