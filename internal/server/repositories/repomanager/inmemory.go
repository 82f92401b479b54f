package repomanager

import (
	"context"
	"database/sql"

	"github.com/todograph/todograph/internal/dbx"
	"github.com/todograph/todograph/internal/server/repositories/todos"
	"github.com/todograph/todograph/internal/server/repositories/users"
)

// InMemoryRepositoryManager vends shared in-memory repositories. The DBTX
// argument is ignored; there is no transactional isolation.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	todos *todos.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		todos: todos.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Todos(db dbx.DBTX) todos.Repository { return m.todos }

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
