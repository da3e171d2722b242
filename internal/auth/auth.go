// Package auth implements password hashing and session token generation.
//
// Passwords are never stored in recoverable form: each account gets a
// random 16-byte salt and a PBKDF2-HMAC-SHA256 hash (100,000 iterations),
// both persisted hex-encoded.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 100_000

	sessionTokenLen = 32
)

// HashPassword derives a hash from the password with a fresh random salt.
// It returns the hex-encoded salt and hash.
func HashPassword(password string) (saltHex, hashHex string, err error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return hex.EncodeToString(salt), hex.EncodeToString(hash), nil
}

// CheckPassword re-derives the hash from the supplied password and the
// stored salt and compares it to the stored hash in constant time.
func CheckPassword(password, saltHex, hashHex string) bool {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}

// GenerateSessionToken returns a cryptographically random hex token.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
