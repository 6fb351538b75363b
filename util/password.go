package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Prefix  = "argon2id"
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// ErrMalformedHash is returned when a stored password hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

var (
	jwtSecretByte = []byte(os.Getenv("JWTSECRET"))
	jwtMutex      sync.RWMutex
)

// GenerateSalt returns a random base64 encoded salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPassword hashes the password with Argon2id and a fresh salt. The result
// has the form "argon2id$<salt>$<hash>".
func HashPassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return HashPasswordArgon2(password, salt)
}

// HashPasswordArgon2 hashes the password with the given base64 salt.
func HashPasswordArgon2(password, salt string) (string, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), rawSalt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return strings.Join([]string{argon2Prefix, salt, base64.RawStdEncoding.EncodeToString(key)}, "$"), nil
}

// VerifyPassword reports whether password matches the encoded hash, using a
// constant-time comparison.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != argon2Prefix {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}
	got, err := HashPasswordArgon2(password, parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	gotKey, _ := base64.RawStdEncoding.DecodeString(strings.Split(got, "$")[2])
	return subtle.ConstantTimeCompare(want, gotKey) == 1, nil
}

// SetJWTSecret allows tests or runtime code to update the secret used to sign
// session tokens. Safe for concurrent use.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes in a thread-safe manner.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}
