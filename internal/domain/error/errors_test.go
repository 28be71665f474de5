package error

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{ErrInsufficientFunds, CodeInsufficientFunds},
		{ErrValidationFailed, CodeValidationFailed},
		{ErrInvalidCredentials, CodeInvalidCredentials},
		{ErrDuplicateEmail, CodeDuplicateEmail},
		{ErrInvalidPagination, CodeInvalidPagination},
		{ErrInvalidDateFormat, CodeInvalidDateFormat},
		{ErrInvalidIDFormat, CodeInvalidIDFormat},
		{ErrTokenExpired, CodeTokenExpired},
		{ErrInvalidToken, CodeInvalidToken},
		{ErrAccountDeactivated, CodeAccountDeactivated},
		{ErrUserNotFound, CodeUserNotFound},
		{ErrTransactionNotFound, CodeTransactionNotFound},
		{ErrInternalServer, CodeInternalServer},
		{fmt.Errorf("anything else"), CodeInternalServer},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, ErrorCode(tc.err), tc.err.Error())
	}
}

func TestErrorCodeUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrUserNotFound)
	assert.Equal(t, CodeUserNotFound, ErrorCode(wrapped))
}

func TestValidationError(t *testing.T) {
	t.Run("Single field message", func(t *testing.T) {
		err := NewValidationError("amount", "Amount must be greater than 0", "-5")

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("Multiple fields counted", func(t *testing.T) {
		err := NewValidationErrors([]FieldError{
			{Field: "fullName", Message: "too short"},
			{Field: "emailAddress", Message: "invalid"},
		})

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "2 invalid fields")
	})

	t.Run("ValidationFields extracts the field list", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewValidationError("category", "too long", nil))

		fields := ValidationFields(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "category", fields[0].Field)
	})

	t.Run("ValidationFields on unrelated error is nil", func(t *testing.T) {
		assert.Nil(t, ValidationFields(ErrUserNotFound))
	})
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("user-1",
		decimal.RequireFromString("600.00"), decimal.RequireFromString("500.00"))

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, IsInsufficientFundsError(err))
	assert.Contains(t, err.Error(), "600.00")
	assert.Contains(t, err.Error(), "500.00")

	var detailed *InsufficientFundsError
	require.ErrorAs(t, err, &detailed)
	assert.Equal(t, "user-1", detailed.UserID)

	fields := detailed.LogFields()
	assert.Equal(t, "insufficient_funds", fields["error_type"])
}

func TestErrorClassHelpers(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.False(t, IsNotFoundError(ErrDuplicateEmail))

	assert.True(t, IsAuthenticationError(ErrInvalidCredentials))
	assert.True(t, IsAuthenticationError(ErrTokenExpired))
	assert.True(t, IsAuthenticationError(ErrAccountDeactivated))
	assert.False(t, IsAuthenticationError(ErrUserNotFound))

	assert.True(t, IsValidationError(NewValidationError("x", "y", nil)))
	assert.False(t, IsValidationError(ErrInternalServer))
}
