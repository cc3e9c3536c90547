// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role is the access level assigned to a user account.
type Role string

const (
	// RoleAuthor may create comments.
	RoleAuthor Role = "author"
	// RoleUser may create tasks. Default for new registrations.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleAuthor || r == RoleUser }

// User is an account row. PasswordHash and RefreshTokenHash are opaque
// Argon2id strings and must never leave the service layer.
type User struct {
	ID               uuid.UUID // PK
	Email            string    // unique
	PasswordHash     string    // Argon2id PHC string
	Role             Role
	RefreshTokenHash string // empty when no active refresh session
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Identity is the caller resolved from a verified access token.
// It lives for one request and is never persisted.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// Tokens collects an issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry (for diagnostics)
}

// Task is a single work item owned by the user who created it.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID // FK -> users.id, the owner
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerID returns the owning user id. Satisfies service.Owned.
func (t *Task) OwnerID() uuid.UUID { return t.UserID }

// Comment is a remark attached to a task, owned by its author.
type Comment struct {
	ID        uuid.UUID
	TaskID    uuid.UUID // FK -> tasks.id
	UserID    uuid.UUID // FK -> users.id, the owner
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerID returns the owning user id. Satisfies service.Owned.
func (c *Comment) OwnerID() uuid.UUID { return c.UserID }
