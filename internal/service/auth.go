// Package service contains application services for authentication,
// authorization and the task board records.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/taskboard/server/internal/crypto"
	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/limiter"
	"github.com/taskboard/server/internal/model"
	"github.com/taskboard/server/internal/repository"
	"github.com/taskboard/server/internal/token"
)

const minPasswordLen = 6

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService defines credential and token operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password string, role model.Role) (model.Identity, error)
	// LoginWithIP applies rate-limiting, authenticates the user and issues a
	// token pair, rotating the stored refresh token hash.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.Identity, error)
	// Refresh exchanges a valid refresh token for a new pair, rotating the
	// stored hash so the presented token cannot be replayed.
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
	// Authenticate resolves a bearer access token into a caller identity.
	Authenticate(ctx context.Context, accessToken string) (model.Identity, error)
}

type AuthServiceImpl struct {
	users repository.UserRepository
	codec *token.Codec
	lim   limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, codec *token.Codec, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, codec: codec, lim: lim}
}

// Register validates input, pre-checks the email and persists a new user.
// A unique-constraint race between check and insert surfaces the same
// ErrEmailTaken as the pre-check. The password hash never leaves this layer.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string, role model.Role) (model.Identity, error) {
	if !emailRE.MatchString(email) {
		return model.Identity{}, fmt.Errorf("%w: malformed email", errs.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return model.Identity{}, fmt.Errorf("%w: password shorter than %d", errs.ErrValidation, minPasswordLen)
	}
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return model.Identity{}, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, role)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.Identity{}, errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.Identity{}, err
	}

	hash, err := pkgcrypto.Hash(password)
	if err != nil {
		return model.Identity{}, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return model.Identity{}, err
	}
	u := &model.User{ID: uid, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return model.Identity{}, err
	}
	return model.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip). Unknown email
// and wrong password are both ErrInvalidCredentials so callers cannot probe
// which emails exist.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.Identity, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, model.Identity{}, err
	}
	if !allowed {
		return model.Tokens{}, model.Identity{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.Verify(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, model.Identity{}, errs.ErrRateLimited
		}
		// missing user and wrong password are indistinguishable
		return model.Tokens{}, model.Identity{}, errs.ErrInvalidCredentials
	}

	_ = s.lim.Success(ctx, email, ipHash) // best-effort reset

	tokens, err := s.issuePair(ctx, u)
	if err != nil {
		return model.Tokens{}, model.Identity{}, err
	}
	return tokens, model.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// Refresh verifies the presented refresh token, checks it against the stored
// hash (the hash on file always belongs to the most recently issued token) and
// rotates to a fresh pair. Every failure mode collapses into ErrUnauthenticated.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return model.Tokens{}, errs.ErrUnauthenticated
	}

	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return model.Tokens{}, errs.ErrUnauthenticated
	}
	if u.RefreshTokenHash == "" {
		// no active session, or already rotated away
		return model.Tokens{}, errs.ErrUnauthenticated
	}
	if !pkgcrypto.Verify(refreshToken, u.RefreshTokenHash) {
		// replay of a rotated-past token
		return model.Tokens{}, errs.ErrUnauthenticated
	}

	return s.issuePair(ctx, u)
}

// Authenticate verifies an access token and confirms the account still exists,
// so tokens of deleted accounts stop working immediately.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, accessToken string) (model.Identity, error) {
	claims, err := s.codec.VerifyAccess(accessToken)
	if err != nil {
		return model.Identity{}, errs.ErrUnauthenticated
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return model.Identity{}, errs.ErrUnauthenticated
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.Identity{}, errs.ErrUnauthenticated
	}
	return model.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// issuePair signs a fresh access+refresh pair from the user's current fields
// and overwrites the stored refresh token hash (rotation).
func (s *AuthServiceImpl) issuePair(ctx context.Context, u *model.User) (model.Tokens, error) {
	access, exp, err := s.codec.SignAccess(u)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, _, err := s.codec.SignRefresh(u)
	if err != nil {
		return model.Tokens{}, err
	}
	hash, err := pkgcrypto.Hash(refresh)
	if err != nil {
		return model.Tokens{}, err
	}
	if err := s.users.SetRefreshTokenHash(ctx, u.ID, hash); err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}
