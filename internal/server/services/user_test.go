package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/todograph/todograph/internal/common"
	"github.com/todograph/todograph/internal/server/auth"
	"github.com/todograph/todograph/internal/server/repositories/repomanager"
)

// --- helpers ---

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestCodec(t *testing.T) *auth.Codec {
	t.Helper()
	return auth.NewCodec("test-secret", 0)
}

func newUserService(t *testing.T, db *sql.DB, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	return NewUserService(db, m, newTestCodec(t))
}

func TestRegisterAndAuthenticate_RoundTrip(t *testing.T) {
	db, _ := newMockDB(t)
	m := repomanager.NewInMemoryRepositoryManager()
	s := newUserService(t, db, m)
	ctx := context.Background()

	registered, err := s.Register(ctx, "Alice", "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if registered == "" {
		t.Fatalf("expected a token from Register")
	}

	authenticated, err := s.Authenticate(ctx, "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}

	codec := newTestCodec(t)
	id1, err := codec.Verify(registered)
	if err != nil {
		t.Fatalf("Verify registered token: %v", err)
	}
	id2, err := codec.Verify(authenticated)
	if err != nil {
		t.Fatalf("Verify authenticated token: %v", err)
	}
	if id1 != id2 || id1 == "" {
		t.Fatalf("tokens bound to different ids: %q vs %q", id1, id2)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, _ := newMockDB(t)
	s := newUserService(t, db, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	if _, err := s.Register(ctx, "Alice", "alice@x.com", "pw123"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	// The conflict depends only on the email, not the other fields.
	_, err := s.Register(ctx, "Other Name", "alice@x.com", "other-pw")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	db, _ := newMockDB(t)
	s := newUserService(t, db, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	if _, err := s.Register(ctx, "Alice", "   ", "pw"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation for blank email, got %v", err)
	}
	if _, err := s.Register(ctx, "Alice", "alice@x.com", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation for empty password, got %v", err)
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	db, _ := newMockDB(t)
	s := newUserService(t, db, repomanager.NewInMemoryRepositoryManager())

	_, err := s.Authenticate(context.Background(), "ghost@x.com", "pw")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	db, _ := newMockDB(t)
	s := newUserService(t, db, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	if _, err := s.Register(ctx, "Alice", "alice@x.com", "pw123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	tok, err := s.Authenticate(ctx, "alice@x.com", "wrong")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("expected common.ErrorInvalidCredentials, got %v", err)
	}
	if tok != "" {
		t.Fatalf("no token may be returned on credential mismatch")
	}
}

func TestGetUser_Unauthenticated(t *testing.T) {
	db, _ := newMockDB(t)
	s := newUserService(t, db, repomanager.NewInMemoryRepositoryManager())

	_, err := s.GetUser(context.Background(), "")
	if !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("expected common.ErrorUnauthenticated, got %v", err)
	}
}

func TestGetUser_ReturnsAccount(t *testing.T) {
	db, _ := newMockDB(t)
	s := newUserService(t, db, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	tok, err := s.Register(ctx, "Alice", "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	userID, err := newTestCodec(t).Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}
	if user.Email != "alice@x.com" || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if string(user.PasswordHash) == "pw123" {
		t.Fatalf("stored hash must not be the plaintext")
	}
}

func TestDeleteAllUsersAndTodos(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := repomanager.NewInMemoryRepositoryManager()
	s := newUserService(t, db, m)
	todoSvc := NewTodoService(db, m)
	ctx := context.Background()

	tok, err := s.Register(ctx, "Alice", "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	userID, err := newTestCodec(t).Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if _, err := todoSvc.Create(ctx, userID, "Buy milk", ""); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.DeleteAllUsersAndTodos(ctx); err != nil {
		t.Fatalf("DeleteAllUsersAndTodos error: %v", err)
	}

	if _, err := s.Authenticate(ctx, "alice@x.com", "pw123"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
	list, err := todoSvc.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListForUser error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no todos after wipe, got %d", len(list))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
