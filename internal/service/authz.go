package service

import (
	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/model"
)

// Owned is any record exposing the user that owns it.
type Owned interface {
	OwnerID() uuid.UUID
}

// RequireRole fails with ErrForbidden unless the identity's role is in the
// required set. An empty set admits any authenticated caller.
func RequireRole(ident model.Identity, required ...model.Role) error {
	if len(required) == 0 {
		return nil
	}
	for _, r := range required {
		if ident.Role == r {
			return nil
		}
	}
	return errs.ErrForbidden
}

// IsOwner reports whether the identity owns the resource.
func IsOwner(ident model.Identity, res Owned) bool {
	return ident.UserID == res.OwnerID()
}

// RequireOwner fails with ErrForbidden when the resource exists but belongs to
// someone else. Callers check existence first, so "not found" never masquerades
// as an ownership failure (and vice versa).
func RequireOwner(ident model.Identity, res Owned) error {
	if !IsOwner(ident, res) {
		return errs.ErrForbidden
	}
	return nil
}
