package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// DefaultBcryptCost balances hash strength against login latency
const DefaultBcryptCost = 12

// BcryptHasher implements the PasswordHasher port with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost, clamped to the
// range bcrypt accepts
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a bcrypt hash from the plaintext password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare checks a candidate password against the stored hash
func (h *BcryptHasher) Compare(hashedPassword, candidate string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(candidate)); err != nil {
		return errs.ErrInvalidCredentials
	}
	return nil
}
