package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLength  = 32 // 256 bit, AES-256
	pbkdf2SaltLength = 16
)

// NewSalt returns a fresh random 16-byte salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey stretches a password into a 32-byte AES key with
// PBKDF2-SHA256. The same password and salt always produce the same key,
// which is what lets a later download re-derive the key from the stored
// salt.
func DeriveKey(password string, salt []byte) ([]byte, error) {
	if len(salt) != pbkdf2SaltLength {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", pbkdf2SaltLength, len(salt))
	}
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New), nil
}
