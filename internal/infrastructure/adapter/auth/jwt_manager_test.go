package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
)

// movableClock is a TimeProvider whose current instant tests can shift
type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time                      { return c.now }
func (c *movableClock) Since(t time.Time) coreport.Duration { return coreport.Duration(c.now.Sub(t)) }
func (c *movableClock) Sleep(coreport.Duration)             {}
func (c *movableClock) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

func TestJWTManagerRoundTrip(t *testing.T) {
	clock := &movableClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	manager := NewJWTManager("test-secret", time.Hour, clock)

	token, err := manager.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTManagerExpiredToken(t *testing.T) {
	clock := &movableClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	manager := NewJWTManager("test-secret", time.Hour, clock)

	token, err := manager.Generate("user-123")
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestJWTManagerWrongSecret(t *testing.T) {
	clock := &movableClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	issuer := NewJWTManager("secret-a", time.Hour, clock)
	verifier := NewJWTManager("secret-b", time.Hour, clock)

	token, err := issuer.Generate("user-123")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestJWTManagerGarbageToken(t *testing.T) {
	clock := &movableClock{now: time.Now()}
	manager := NewJWTManager("test-secret", time.Hour, clock)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Parse(garbage)
		assert.ErrorIs(t, err, errs.ErrInvalidToken, garbage)
	}
}

func TestJWTManagerDefaultTTL(t *testing.T) {
	clock := &movableClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	manager := NewJWTManager("test-secret", 0, clock)

	token, err := manager.Generate("user-123")
	require.NoError(t, err)

	// Still valid one hour before the default lifetime runs out
	clock.now = clock.now.Add(DefaultTokenTTL - time.Hour)
	userID, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}
