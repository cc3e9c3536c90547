package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/taskboard/server/internal/crypto"
	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/model"
	"github.com/taskboard/server/internal/repository"
)

// UserUpdate carries the optional fields of a user update. Nil means keep.
type UserUpdate struct {
	Email    *string
	Password *string
	Role     *model.Role
}

// UserService defines read/update/delete over accounts. Creation goes through
// AuthService.Register so hashing and validation have a single path.
type UserService interface {
	// List returns all users, newest first, hashes stripped.
	List(ctx context.Context) ([]model.User, error)
	// Get returns a user by id, hashes stripped.
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	// Update applies the provided fields and returns the result.
	Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error)
	// Delete removes an account. Its issued access tokens stop working at once.
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// List returns all users with credential material blanked.
func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	out, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		strip(&out[i])
	}
	return out, nil
}

// Get returns one user with credential material blanked.
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	strip(u)
	return u, nil
}

// Update validates and applies the provided fields. An email collision
// surfaces as ErrEmailTaken; a password change is re-hashed here.
func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error) {
	if upd.Email != nil && !emailRE.MatchString(*upd.Email) {
		return nil, fmt.Errorf("%w: malformed email", errs.ErrValidation)
	}
	if upd.Password != nil && len(*upd.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password shorter than %d", errs.ErrValidation, minPasswordLen)
	}
	if upd.Role != nil && !upd.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, *upd.Role)
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		hash, err := pkgcrypto.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	strip(u)
	return u, nil
}

// Delete removes an account.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// strip blanks fields that must never appear in responses or logs.
func strip(u *model.User) {
	u.PasswordHash = ""
	u.RefreshTokenHash = ""
}
