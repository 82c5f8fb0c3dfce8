package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher converts plaintext passwords into their stored form and checks
// login attempts against it. The stored form embeds its own work factor,
// so the cost can be raised later without invalidating existing hashes.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed Hasher. A cost outside the bcrypt
// range falls back to the library default.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (h *bcryptHasher) Compare(stored, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
}
