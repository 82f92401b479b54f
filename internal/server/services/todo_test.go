package services

import (
	"context"
	"errors"
	"testing"

	"github.com/todograph/todograph/internal/common"
	"github.com/todograph/todograph/internal/server/models"
	"github.com/todograph/todograph/internal/server/repositories/repomanager"
)

func newTodoService(t *testing.T) *TodoService {
	t.Helper()
	db, _ := newMockDB(t)
	return NewTodoService(db, repomanager.NewInMemoryRepositoryManager())
}

func mustCreate(t *testing.T, s *TodoService, userID, task, description string) *models.Todo {
	t.Helper()
	todo, err := s.Create(context.Background(), userID, task, description)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return todo
}

func TestCreate_Defaults(t *testing.T) {
	s := newTodoService(t)

	todo := mustCreate(t, s, "u-1", "Buy milk", "2 liters")
	if todo.IsDone {
		t.Fatalf("new todo must start not done")
	}
	if todo.OwnerID != "u-1" {
		t.Fatalf("owner mismatch: %q", todo.OwnerID)
	}
	if todo.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreate_WhitespaceTask(t *testing.T) {
	s := newTodoService(t)

	_, err := s.Create(context.Background(), "u-1", "   ", "")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	s := newTodoService(t)

	_, err := s.Create(context.Background(), "", "Buy milk", "")
	if !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("expected common.ErrorUnauthenticated, got %v", err)
	}
}

func TestUpdate_MarkTogglesExactlyOncePerCall(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "u-1", "Buy milk", "")

	updated, err := s.Update(ctx, "u-1", todo.ID, UpdateParams{IsMark: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !updated.IsDone {
		t.Fatalf("expected IsDone=true after first mark")
	}

	// A second mark returns to the original state: the pair is idempotent,
	// a single call is not.
	updated, err = s.Update(ctx, "u-1", todo.ID, UpdateParams{IsMark: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.IsDone {
		t.Fatalf("expected IsDone=false after second mark")
	}
}

func TestUpdate_MarkIgnoresTask(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "u-1", "Buy milk", "")

	updated, err := s.Update(ctx, "u-1", todo.ID, UpdateParams{IsMark: true, Task: "X"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Task != "Buy milk" {
		t.Fatalf("mark must ignore task, got %q", updated.Task)
	}
	if !updated.IsDone {
		t.Fatalf("expected IsDone to flip")
	}
}

func TestUpdate_MarkOverwritesSuppliedDescription(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "u-1", "Buy milk", "old")

	updated, err := s.Update(ctx, "u-1", todo.ID, UpdateParams{IsMark: true, Description: "new"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Description != "new" {
		t.Fatalf("expected description overwrite, got %q", updated.Description)
	}
}

func TestUpdate_PartialEdit(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "u-1", "Buy milk", "2 liters")

	updated, err := s.Update(ctx, "u-1", todo.ID, UpdateParams{Task: "Buy oat milk"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Task != "Buy oat milk" || updated.Description != "2 liters" {
		t.Fatalf("partial update must keep unsupplied fields: %+v", updated)
	}
	if updated.IsDone {
		t.Fatalf("edit branch must not touch IsDone")
	}

	updated, err = s.Update(ctx, "u-1", todo.ID, UpdateParams{Description: "oat, 1 liter"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Task != "Buy oat milk" || updated.Description != "oat, 1 liter" {
		t.Fatalf("partial update must keep unsupplied fields: %+v", updated)
	}
}

func TestUpdate_NoFieldsIsInvalidArgument(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "u-1", "Buy milk", "")

	_, err := s.Update(ctx, "u-1", todo.ID, UpdateParams{})
	if !errors.Is(err, common.ErrorInvalidArgument) {
		t.Fatalf("expected common.ErrorInvalidArgument, got %v", err)
	}
}

func TestUpdate_UnknownTodo(t *testing.T) {
	s := newTodoService(t)

	_, err := s.Update(context.Background(), "u-1", "missing", UpdateParams{IsMark: true})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_OtherUsersTodoIsNotFound(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "user-a", "secret task", "")

	_, err := s.GetByID(ctx, "user-b", todo.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}

	got, err := s.GetByID(ctx, "user-a", todo.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Task != "secret task" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestUpdateAndDelete_OtherUsersTodoIsNotFound(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "user-a", "secret task", "")

	if _, err := s.Update(ctx, "user-b", todo.ID, UpdateParams{IsMark: true}); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound on update, got %v", err)
	}
	if err := s.Delete(ctx, "user-b", todo.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound on delete, got %v", err)
	}

	// The owner still sees an unchanged todo.
	got, err := s.GetByID(ctx, "user-a", todo.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.IsDone {
		t.Fatalf("foreign update must not have applied")
	}
}

func TestDelete_RemovesTodo(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()
	todo := mustCreate(t, s, "u-1", "Buy milk", "")

	if err := s.Delete(ctx, "u-1", todo.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.GetByID(ctx, "u-1", todo.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound after delete, got %v", err)
	}
}

func TestListForUser_CreationOrderAndIsolation(t *testing.T) {
	s := newTodoService(t)
	ctx := context.Background()

	first := mustCreate(t, s, "u-1", "first", "")
	second := mustCreate(t, s, "u-1", "second", "")
	mustCreate(t, s, "u-2", "someone else's", "")

	list, err := s.ListForUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListForUser error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("expected creation order, got %q then %q", list[0].Task, list[1].Task)
	}
}

func TestListForUser_Unauthenticated(t *testing.T) {
	s := newTodoService(t)

	_, err := s.ListForUser(context.Background(), "")
	if !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("expected common.ErrorUnauthenticated, got %v", err)
	}
}
