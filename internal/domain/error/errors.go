package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds   = 4001
	CodeValidationFailed    = 4002
	CodeInvalidCredentials  = 4003
	CodeDuplicateEmail      = 4004
	CodeInvalidPagination   = 4005
	CodeInvalidDateFormat   = 4006
	CodeInvalidIDFormat     = 4007
	CodeInvalidToken        = 4010
	CodeTokenExpired        = 4011
	CodeAccountDeactivated  = 4030
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a debit or adjustment would drive the balance below zero
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateEmail is returned when registering with an email address that already exists
	ErrDuplicateEmail = errors.New("an account with this email address already exists")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist or is inactive
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidCredentials is returned on login with an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email address or password")

	// ErrAccountDeactivated is returned when the account is disabled
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrValidationFailed is the base error for field-level validation failures
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidPagination is returned when page/limit parameters are out of range
	ErrInvalidPagination = errors.New("invalid pagination parameters")

	// ErrInvalidDateFormat is returned when a date filter cannot be parsed
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidIDFormat is returned when an identifier is not a valid UUID
	ErrInvalidIDFormat = errors.New("invalid identifier format")

	// ErrInvalidToken is returned when an auth token is malformed or its subject is unknown
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when an auth token is past its expiry
	ErrTokenExpired = errors.New("token has expired")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrValidationFailed):
		return CodeValidationFailed
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrDuplicateEmail):
		return CodeDuplicateEmail
	case errors.Is(err, ErrInvalidPagination):
		return CodeInvalidPagination
	case errors.Is(err, ErrInvalidDateFormat):
		return CodeInvalidDateFormat
	case errors.Is(err, ErrInvalidIDFormat):
		return CodeInvalidIDFormat
	case errors.Is(err, ErrTokenExpired):
		return CodeTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	case errors.Is(err, ErrAccountDeactivated):
		return CodeAccountDeactivated
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	default:
		return CodeInternalServer
	}
}

// FieldError describes a single failed field check
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError aggregates field-level validation failures
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

// Is checks if the target error is an ErrValidationFailed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	fields := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, f.Field)
	}
	return map[string]any{
		"error_type": "validation_failed",
		"fields":     fields,
		"error_code": CodeValidationFailed,
	}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string, value any) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message, Value: value}}}
}

// NewValidationErrors creates a validation error from a list of field failures
func NewValidationErrors(fields []FieldError) error {
	return &ValidationError{Fields: fields}
}

// InsufficientFundsError provides detailed error information for insufficient funds
type InsufficientFundsError struct {
	UserID    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s: required %s, available %s",
		e.UserID, e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID,
		"requested":  e.Requested.StringFixed(2),
		"available":  e.Available.StringFixed(2),
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID string, requested, available decimal.Decimal) error {
	return &InsufficientFundsError{
		UserID:    userID,
		Requested: requested,
		Available: available,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsValidationError checks if the error carries field-level validation failures
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrTransactionNotFound)
}

// IsAuthenticationError checks if the error should surface as an authentication failure
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountDeactivated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired)
}

// ValidationFields extracts the field failures from an error chain, if any
func ValidationFields(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
