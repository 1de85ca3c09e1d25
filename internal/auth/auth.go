package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SignUpTokenBytes is the strength of the session token issued at sign-up.
	SignUpTokenBytes = 16
	// ResetTokenBytes is the strength used when the token is rotated on a
	// password change or recovery.
	ResetTokenBytes = 64

	SaltBytes = 16

	pbkdf2Iterations = 4096
	pbkdf2KeyLength  = 32
)

// HashPassword derives a deterministic digest from the password and the
// stored salt. Same inputs always produce the same output.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// VerifyPassword recomputes the digest and compares it with the stored one.
func VerifyPassword(password, salt, expected string) bool {
	return HashPassword(password, salt) == expected
}

// NewToken returns n random bytes hex-encoded, for opaque session tokens and
// password salts.
func NewToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func NewSalt() (string, error) {
	return NewToken(SaltBytes)
}
