// Package token signs and verifies the JWT pair used for authentication.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/server/internal/model"
)

// Sentinel failure modes. Callers outside this package collapse both into a
// single unauthenticated outcome; the distinction exists for tests and logs.
var (
	// ErrInvalidToken indicates a bad signature, wrong algorithm or garbage input.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload embedded in both access and refresh tokens.
// The two kinds differ only in signing secret and TTL.
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// Codec issues and verifies HS256 tokens. Access and refresh tokens use
// independent secrets, so one kind never validates as the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec constructs a Codec with the given secrets and TTLs.
func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAccess issues a short-lived access token for the user.
func (c *Codec) SignAccess(u *model.User) (string, time.Time, error) {
	return sign(u, c.accessSecret, c.accessTTL)
}

// SignRefresh issues a long-lived refresh token for the user.
func (c *Codec) SignRefresh(u *model.User) (string, time.Time, error) {
	return sign(u, c.refreshSecret, c.refreshTTL)
}

// VerifyAccess validates tok against the access secret.
func (c *Codec) VerifyAccess(tok string) (*Claims, error) {
	return verify(tok, c.accessSecret)
}

// VerifyRefresh validates tok against the refresh secret.
func (c *Codec) VerifyRefresh(tok string) (*Claims, error) {
	return verify(tok, c.refreshSecret)
}

func sign(u *model.User, secret []byte, ttl time.Duration) (string, time.Time, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			// unique per issue, so rotation always changes the token bytes
			ID: jti.String(),
		},
		Email: u.Email,
		Role:  u.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func verify(tok string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}
	return claims, nil
}
