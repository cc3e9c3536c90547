// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// The sentinels below are the only error vocabulary exposed to the transport
// layer. Internal failure detail (signature vs expiry, missing email vs bad
// password) is deliberately collapsed into them.
var (
	// ErrValidation indicates malformed input, caught before any store access.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken indicates a register-time email conflict.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a missing, invalid, expired or rotated-past
	// token, or a token whose account no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates an authenticated caller with insufficient role or
	// no ownership of the target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
