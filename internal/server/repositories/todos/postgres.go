// Package todos provides the PostgreSQL-backed todo store with
// ownership-folded lookup, update, and delete predicates.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/todograph/todograph/internal/common"
	"github.com/todograph/todograph/internal/dbx"
	"github.com/todograph/todograph/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (id, owner_id, task, description, is_done, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.OwnerID, todo.Task, todo.Description, todo.IsDone, todo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	query :=
		`SELECT id, owner_id, task, description, is_done, created_at FROM todos
		 WHERE id = $1 AND owner_id = $2
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&todo.ID, &todo.OwnerID, &todo.Task, &todo.Description, &todo.IsDone, &todo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// ListByOwner returns all todos owned by ownerID, oldest first. Ties on
// created_at break on id for a stable order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	query :=
		`SELECT id, owner_id, task, description, is_done, created_at FROM todos
		 WHERE owner_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Task, &item.Description, &item.IsDone, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites task, description, and is_done for the row matching both
// id and owner. Zero rows affected means the caller does not own such a todo.
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) error {
	query :=
		`UPDATE todos SET task = $1, description = $2, is_done = $3
		 WHERE id = $4 AND owner_id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		todo.Task, todo.Description, todo.IsDone, todo.ID, todo.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteAll removes every todo row. Administrative escape hatch only.
func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos`)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
