// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/model"
)

// UserRepository is the credential store consumed by the auth service plus
// the user CRUD the HTTP layer needs.
type UserRepository interface {
	// Create inserts a new user. Returns errs.ErrEmailTaken on a unique
	// constraint violation.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email (case-sensitive, as stored).
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]model.User, error)
	// Update persists email, password hash and role for an existing user.
	// Returns errs.ErrEmailTaken when the new email collides.
	Update(ctx context.Context, u *model.User) error
	// SetRefreshTokenHash overwrites the stored refresh token hash (rotation).
	// The single-row UPDATE is the serialization point for concurrent refreshes.
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash string) error
	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}
