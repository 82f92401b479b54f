// Package services contains server-side business logic. This file implements
// UserService, which handles registration, sign-in, and issuing bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/todograph/todograph/internal/common"
	"github.com/todograph/todograph/internal/cryptox"
	"github.com/todograph/todograph/internal/dbx"
	"github.com/todograph/todograph/internal/server/auth"
	"github.com/todograph/todograph/internal/server/models"
	"github.com/todograph/todograph/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create an account and mint a token
// - Authenticate: verify credentials and mint a token
// - GetUser: load the account behind a resolved identity
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
}

// NewUserService constructs a UserService using repositories and the token codec.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *UserService {
	return &UserService{db: db, repomanager: m, codec: codec}
}

// Register creates a new user with a bcrypt-hashed password and returns a
// token bound to the new id. A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking email: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := repo.Create(ctx, user); err != nil {
		// The unique constraint may still fire between the pre-check and
		// the insert; surface it as the same conflict.
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.codec.Issue(user.ID)
}

// Authenticate verifies the email/password pair and returns a token bound to
// the matching user id. An unknown email yields common.ErrorNotFound; a hash
// mismatch yields common.ErrorInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if !cryptox.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrorInvalidCredentials
	}

	return s.codec.Issue(user.ID)
}

// GetUser loads the account for a resolved identity.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, userID)
}

// DeleteAllUsersAndTodos wipes every todo and user in one transaction.
// Administrative escape hatch; not part of the normal lifecycle.
func (s *UserService) DeleteAllUsersAndTodos(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Todos(tx).DeleteAll(ctx); err != nil {
			return fmt.Errorf("error deleting todos: %w", err)
		}
		if err := s.repomanager.Users(tx).DeleteAll(ctx); err != nil {
			return fmt.Errorf("error deleting users: %w", err)
		}
		return nil
	})
}
