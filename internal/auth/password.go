package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way salted password hashing.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher with the given bcrypt work factor.
// Non-positive cost falls back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted hash of plaintext. A hashing failure is an
// internal error for the caller, never a silent mismatch.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
