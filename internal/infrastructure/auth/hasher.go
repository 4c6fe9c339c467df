package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes account credentials with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher. Costs outside bcrypt's range fall back to
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of credential.
func (h *BcryptHasher) Hash(credential string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether credential matches hash.
func (h *BcryptHasher) Verify(hash, credential string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify credential: %w", err)
	}
}
