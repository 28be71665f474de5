package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

func TestBcryptHasher(t *testing.T) {
	// Minimum cost keeps the test fast; production uses the default
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("Hash and compare round trip", func(t *testing.T) {
		hashed, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		assert.NotEqual(t, "secret-password", hashed)

		assert.NoError(t, hasher.Compare(hashed, "secret-password"))
	})

	t.Run("Wrong password maps to invalid credentials", func(t *testing.T) {
		hashed, err := hasher.Hash("secret-password")
		require.NoError(t, err)

		assert.ErrorIs(t, hasher.Compare(hashed, "wrong-password"), errs.ErrInvalidCredentials)
	})

	t.Run("Same password hashes differently", func(t *testing.T) {
		first, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		second, err := hasher.Hash("secret-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Out of range cost falls back to default", func(t *testing.T) {
		fallback := NewBcryptHasher(100)
		assert.Equal(t, DefaultBcryptCost, fallback.cost)
	})
}
