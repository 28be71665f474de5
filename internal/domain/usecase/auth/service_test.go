package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/auth"
	authadapter "github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/repository"
	timeadapter "github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/time"
)

// newService wires the auth service against sqlite with the real hashing
// and token adapters
func newService(t *testing.T) (*auth.Service, *repository.UserRepository, *gorm.DB) {
	t.Helper()

	db := database.NewTestDB(t)
	log := logger.NewNoopLogger()
	tp := timeadapter.NewRealTimeProvider()

	userRepo := repository.NewUserRepository(db, tp, log)
	hasher := authadapter.NewBcryptHasher(bcrypt.MinCost)
	tokens := authadapter.NewJWTManager("test-secret", time.Hour, tp)

	return auth.NewService(userRepo, hasher, tokens, tp, log), userRepo, db
}

func register(t *testing.T, svc *auth.Service, email string) *auth.RegisterResult {
	t.Helper()
	result, err := svc.Register(context.Background(), auth.RegisterInput{
		FullName:     "Jane Doe",
		EmailAddress: email,
		Password:     "secret-password",
	})
	require.NoError(t, err)
	return result
}

func TestRegister(t *testing.T) {
	svc, userRepo, _ := newService(t)
	ctx := context.Background()

	t.Run("New account starts at zero with a usable token", func(t *testing.T) {
		result := register(t, svc, "jane@example.com")

		assert.Equal(t, "Jane Doe", result.User.FullName)
		assert.Equal(t, entity.AccountPersonal, result.User.AccountType)
		assert.True(t, result.User.CurrentBalance().IsZero())
		assert.NotNil(t, result.User.LastLoginDate)
		assert.NotEmpty(t, result.AuthToken)

		authenticated, err := svc.Authenticate(ctx, result.AuthToken)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, authenticated.ID)

		persisted, err := userRepo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "secret-password", persisted.PasswordHash)
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{
			FullName:     "Second Jane",
			EmailAddress: "Jane@Example.com",
			Password:     "another-password",
		})
		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})

	t.Run("Short password rejected before hashing", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{
			FullName:     "Jane Doe",
			EmailAddress: "short@example.com",
			Password:     "12345",
		})
		assert.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("Entity validation surfaces field errors", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{
			FullName:     "J4n3",
			EmailAddress: "not-an-email",
			Password:     "secret-password",
		})
		require.ErrorIs(t, err, errs.ErrValidationFailed)
		assert.NotEmpty(t, errs.ValidationFields(err))
	})
}

func TestLogin(t *testing.T) {
	svc, userRepo, _ := newService(t)
	ctx := context.Background()
	registered := register(t, svc, "jane@example.com")

	t.Run("Valid credentials issue a token and stamp the login", func(t *testing.T) {
		result, err := svc.Login(ctx, auth.LoginInput{
			EmailAddress: "  Jane@Example.COM ",
			Password:     "secret-password",
		})

		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)
		assert.NotEmpty(t, result.AuthToken)
		require.NotNil(t, result.User.LastLoginDate)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{
			EmailAddress: "jane@example.com",
			Password:     "wrong-password",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Unknown email is indistinguishable from wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{
			EmailAddress: "nobody@example.com",
			Password:     "secret-password",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Deactivated account cannot log in", func(t *testing.T) {
		deactivated := register(t, svc, "inactive@example.com")
		deactivated.User.IsAccountActive = false
		require.NoError(t, userRepo.Update(ctx, deactivated.User))

		_, err := svc.Login(ctx, auth.LoginInput{
			EmailAddress: "inactive@example.com",
			Password:     "secret-password",
		})
		assert.ErrorIs(t, err, errs.ErrAccountDeactivated)
	})
}

func TestAuthenticate(t *testing.T) {
	svc, userRepo, db := newService(t)
	ctx := context.Background()
	registered := register(t, svc, "jane@example.com")

	t.Run("Garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Token for a deleted user", func(t *testing.T) {
		ghost := register(t, svc, "ghost@example.com")
		require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", ghost.User.ID.String()).Error)

		_, err := svc.Authenticate(ctx, ghost.AuthToken)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Token for a deactivated user", func(t *testing.T) {
		registered.User.IsAccountActive = false
		require.NoError(t, userRepo.Update(ctx, registered.User))

		_, err := svc.Authenticate(ctx, registered.AuthToken)
		assert.ErrorIs(t, err, errs.ErrAccountDeactivated)
	})
}
