package token

import (
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    uuid.Must(uuid.NewV4()),
		Email: "alice@example.com",
		Role:  model.RoleUser,
	}
}

func TestCodec_SignAndVerifyAccess(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("access"), []byte("refresh"), time.Minute, time.Hour)
	u := testUser()

	tok, exp, err := c.SignAccess(u)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if tok == "" || time.Until(exp) <= 0 {
		t.Fatalf("bad token/expiry: %q %v", tok, exp)
	}

	claims, err := c.VerifyAccess(tok)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Subject != u.ID.String() || claims.Email != u.Email || claims.Role != u.Role {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestCodec_SecretsAreIndependent(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("access"), []byte("refresh"), time.Minute, time.Hour)
	u := testUser()

	refresh, _, err := c.SignRefresh(u)
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	// A refresh token must never validate as an access token even though the
	// claims payload is identical.
	if _, err := c.VerifyAccess(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for refresh-as-access, got %v", err)
	}

	access, _, err := c.SignAccess(u)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := c.VerifyRefresh(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for access-as-refresh, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("access"), []byte("refresh"), -time.Minute, time.Hour)
	tok, _, err := c.SignAccess(testUser())
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := c.VerifyAccess(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("access"), []byte("refresh"), time.Minute, time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := c.VerifyAccess(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("want ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("access"), []byte("refresh"), time.Minute, time.Hour)
	other := NewCodec([]byte("other"), []byte("refresh"), time.Minute, time.Hour)

	tok, _, err := other.SignAccess(testUser())
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := c.VerifyAccess(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for foreign signature, got %v", err)
	}
}
