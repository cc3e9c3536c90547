// Package crypto implements server-side password and token hashing.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
)

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// Hash returns an Argon2id hash of the plaintext in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>. The salt is random per call,
// so two hashes of the same plaintext differ. Used for both passwords and
// refresh tokens.
func Hash(plaintext string) (string, error) {
	salt, err := RandBytes(argonSaltLen)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	sum := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify reports whether plaintext matches the PHC-encoded Argon2id hash.
// Comparison is constant-time. Malformed input yields false, never an error.
func Verify(plaintext, encoded string) bool {
	salt, sum, par, ok := decodePHC(encoded)
	if !ok {
		return false
	}
	got := argon2.IDKey([]byte(plaintext), salt, par.time, par.memory, par.threads, uint32(len(sum)))
	return subtle.ConstantTimeCompare(got, sum) == 1
}

type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

// decodePHC parses a PHC string into salt, hash and parameters.
func decodePHC(encoded string) (salt, sum []byte, par argonParams, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, par, false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, par, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &par.memory, &par.time, &par.threads); err != nil {
		return nil, nil, par, false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, par, false
	}
	sum, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(sum) == 0 {
		return nil, nil, par, false
	}
	return salt, sum, par, true
}
