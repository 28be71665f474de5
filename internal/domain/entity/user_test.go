package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: fixedTime}

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("Jane Doe", "Jane.Doe@Example.com", AccountBusiness, "hashed-secret", clock)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.FullName)
		assert.Equal(t, "jane.doe@example.com", user.EmailAddress)
		assert.Equal(t, AccountBusiness, user.AccountType)
		assert.True(t, user.CurrentBalance().IsZero())
		assert.True(t, user.IsAccountActive)
		assert.Nil(t, user.LastLoginDate)
		assert.Equal(t, fixedTime, user.AccountCreatedDate)
		assert.NotEqual(t, user.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("Empty account type defaults to personal", func(t *testing.T) {
		user, err := NewUser("Jane Doe", "jane@example.com", "", "hashed-secret", clock)

		require.NoError(t, err)
		assert.Equal(t, AccountPersonal, user.AccountType)
	})

	t.Run("Invalid fields are collected", func(t *testing.T) {
		user, err := NewUser("J", "not-an-email", "crypto", "", clock)

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)

		fields := errs.ValidationFields(err)
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.Field)
		}
		assert.ElementsMatch(t, []string{"fullName", "emailAddress", "accountType", "password"}, names)
	})

	t.Run("Full name with digits rejected", func(t *testing.T) {
		_, err := NewUser("Jane D03", "jane@example.com", AccountPersonal, "hash", clock)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("Full name too long rejected", func(t *testing.T) {
		long := make([]byte, 51)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewUser(string(long), "jane@example.com", AccountPersonal, "hash", clock)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)
	})
}

func TestUserAdjustBalance(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}

	newUserWithBalance := func(t *testing.T, balance string) *User {
		t.Helper()
		user, err := NewUser("Jane Doe", "jane@example.com", AccountPersonal, "hash", clock)
		require.NoError(t, err)
		user.SetBalance(decimal.RequireFromString(balance), clock)
		return user
	}

	t.Run("Positive delta increases balance", func(t *testing.T) {
		user := newUserWithBalance(t, "100.00")

		previous, current, err := user.AdjustBalance(decimal.RequireFromString("50.25"), clock)

		require.NoError(t, err)
		assert.Equal(t, "100.00", previous.StringFixed(2))
		assert.Equal(t, "150.25", current.StringFixed(2))
		assert.Equal(t, "150.25", user.CurrentBalance().StringFixed(2))
	})

	t.Run("Negative delta below zero is rejected", func(t *testing.T) {
		user := newUserWithBalance(t, "100.00")

		_, _, err := user.AdjustBalance(decimal.RequireFromString("-100.01"), clock)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, "100.00", user.CurrentBalance().StringFixed(2))
	})

	t.Run("Delta to exactly zero is allowed", func(t *testing.T) {
		user := newUserWithBalance(t, "100.00")

		_, current, err := user.AdjustBalance(decimal.RequireFromString("-100.00"), clock)

		require.NoError(t, err)
		assert.True(t, current.IsZero())
	})
}

func TestUserCanDebit(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	user, err := NewUser("Jane Doe", "jane@example.com", AccountPersonal, "hash", clock)
	require.NoError(t, err)
	user.SetBalance(decimal.RequireFromString("50.00"), clock)

	assert.True(t, user.CanDebit(decimal.RequireFromString("50.00")))
	assert.True(t, user.CanDebit(decimal.RequireFromString("49.99")))
	assert.False(t, user.CanDebit(decimal.RequireFromString("50.01")))
}

func TestUserUpdateProfile(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}

	newUser := func(t *testing.T) *User {
		t.Helper()
		user, err := NewUser("Jane Doe", "jane@example.com", AccountPersonal, "hash", clock)
		require.NoError(t, err)
		return user
	}

	t.Run("Nil fields leave profile unchanged", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, user.UpdateProfile(nil, nil, clock))
		assert.Equal(t, "Jane Doe", user.FullName)
		assert.Equal(t, AccountPersonal, user.AccountType)
	})

	t.Run("Both fields updated", func(t *testing.T) {
		user := newUser(t)
		name := "Janet Doe"
		accountType := AccountSavings

		require.NoError(t, user.UpdateProfile(&name, &accountType, clock))
		assert.Equal(t, "Janet Doe", user.FullName)
		assert.Equal(t, AccountSavings, user.AccountType)
	})

	t.Run("Invalid account type rejected", func(t *testing.T) {
		user := newUser(t)
		accountType := AccountType("crypto")

		err := user.UpdateProfile(nil, &accountType, clock)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)
		assert.Equal(t, AccountPersonal, user.AccountType)
	})
}

func TestUserAccountAge(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: created}
	user, err := NewUser("Jane Doe", "jane@example.com", AccountPersonal, "hash", clock)
	require.NoError(t, err)

	assert.Equal(t, 0, user.AccountAge(created))
	assert.Equal(t, 30, user.AccountAge(created.AddDate(0, 0, 30)))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestIsValidAccountType(t *testing.T) {
	for _, valid := range []string{"personal", "business", "savings"} {
		assert.True(t, IsValidAccountType(valid), valid)
	}
	for _, invalid := range []string{"", "crypto", "Personal"} {
		assert.False(t, IsValidAccountType(invalid), invalid)
	}
}
