package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 64
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal — looks non-random", n)
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := Hash("p@ssw0rd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("p@ssw0rd")
	if err != nil {
		t.Fatalf("Hash(2): %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same plaintext are equal — salt not random")
	}
	if !strings.HasPrefix(h1, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", h1)
	}
	if strings.Contains(h1, "p@ssw0rd") {
		t.Fatalf("hash leaks plaintext")
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !Verify("correct horse battery staple", hash) {
		t.Fatalf("Verify: expected true for correct plaintext")
	}
	if Verify("wrong", hash) {
		t.Fatalf("Verify: expected false for wrong plaintext")
	}
	if Verify("", hash) {
		t.Fatalf("Verify: expected false for empty plaintext")
	}
}

func TestVerify_MalformedHashReturnsFalse(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=1$short",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$c3Vt",
		"$argon2id$v=19$m=abc,t=3,p=1$c2FsdA$c3Vt",
		"$argon2id$v=19$m=65536,t=3,p=1$!!!$c3Vt",
		"$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$!!!",
	} {
		if Verify("anything", bad) {
			t.Fatalf("Verify accepted malformed hash %q", bad)
		}
	}
}
