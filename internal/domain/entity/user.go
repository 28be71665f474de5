package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
)

// AccountType classifies a user account
type AccountType string

// Account types
const (
	AccountPersonal AccountType = "personal"
	AccountBusiness AccountType = "business"
	AccountSavings  AccountType = "savings"
)

// DefaultAccountType is assigned when registration omits the account type
const DefaultAccountType = AccountPersonal

var (
	emailPattern    = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Full name length bounds
const (
	MinFullNameLength = 2
	MaxFullNameLength = 50
)

// User represents a registered account holding a running balance
type User struct {
	ID                 uuid.UUID   // Unique identifier for the user
	FullName           string      // Display name, letters and spaces only
	EmailAddress       string      // Unique login identity, stored lowercase
	AccountType        AccountType // personal, business or savings
	PasswordHash       string      // Hashed secret, never the plaintext
	currentBalance     decimal.Decimal
	IsAccountActive    bool       // Gate on login and token verification
	LastLoginDate      *time.Time // Nil until the first login
	AccountCreatedDate time.Time  // Set once at registration, immutable
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new user with a zero balance. The password must already
// be hashed by the caller; the entity never sees the plaintext.
func NewUser(fullName, emailAddress string, accountType AccountType, passwordHash string, timeProvider coreport.TimeProvider) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	emailAddress = NormalizeEmail(emailAddress)

	if accountType == "" {
		accountType = DefaultAccountType
	}

	var fields []errs.FieldError
	if len(fullName) < MinFullNameLength || len(fullName) > MaxFullNameLength {
		fields = append(fields, errs.FieldError{
			Field: "fullName", Message: "Full name must be between 2 and 50 characters", Value: fullName,
		})
	} else if !fullNamePattern.MatchString(fullName) {
		fields = append(fields, errs.FieldError{
			Field: "fullName", Message: "Full name can only contain letters and spaces", Value: fullName,
		})
	}
	if !emailPattern.MatchString(emailAddress) {
		fields = append(fields, errs.FieldError{
			Field: "emailAddress", Message: "Please enter a valid email address", Value: emailAddress,
		})
	}
	if !IsValidAccountType(string(accountType)) {
		fields = append(fields, errs.FieldError{
			Field: "accountType", Message: "Account type must be either personal, business, or savings", Value: string(accountType),
		})
	}
	if passwordHash == "" {
		fields = append(fields, errs.FieldError{
			Field: "password", Message: "Password is required",
		})
	}
	if len(fields) > 0 {
		return nil, errs.NewValidationErrors(fields)
	}

	now := timeProvider.Now()
	return &User{
		ID:                 uuid.New(),
		FullName:           fullName,
		EmailAddress:       emailAddress,
		AccountType:        accountType,
		PasswordHash:       passwordHash,
		currentBalance:     decimal.Zero,
		IsAccountActive:    true,
		AccountCreatedDate: now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// CurrentBalance returns the running balance
func (u *User) CurrentBalance() decimal.Decimal {
	return u.currentBalance
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetBalance(balance decimal.Decimal, timeProvider coreport.TimeProvider) {
	u.currentBalance = balance
	u.UpdatedAt = timeProvider.Now()
}

// CanDebit checks whether the balance covers a deduction of the given amount
func (u *User) CanDebit(amount decimal.Decimal) bool {
	return u.currentBalance.GreaterThanOrEqual(amount)
}

// AdjustBalance applies a signed delta to the balance, used by the direct
// balance-adjustment path that bypasses the transaction ledger.
// Returns the balance before and after the change.
func (u *User) AdjustBalance(delta decimal.Decimal, timeProvider coreport.TimeProvider) (decimal.Decimal, decimal.Decimal, error) {
	previous := u.currentBalance
	next := previous.Add(delta)
	if next.IsNegative() {
		return previous, previous, errs.NewInsufficientFundsError(u.ID.String(), delta.Neg(), previous)
	}
	u.currentBalance = next
	u.UpdatedAt = timeProvider.Now()
	return previous, next, nil
}

// RecordLogin stamps the last login date
func (u *User) RecordLogin(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	u.LastLoginDate = &now
	u.UpdatedAt = now
}

// UpdateProfile mutates the profile fields callers are allowed to change.
// Email, password hash and balance are never touched here.
func (u *User) UpdateProfile(fullName *string, accountType *AccountType, timeProvider coreport.TimeProvider) error {
	var fields []errs.FieldError

	if fullName != nil {
		name := strings.TrimSpace(*fullName)
		if len(name) < MinFullNameLength || len(name) > MaxFullNameLength {
			fields = append(fields, errs.FieldError{
				Field: "fullName", Message: "Full name must be between 2 and 50 characters", Value: name,
			})
		} else if !fullNamePattern.MatchString(name) {
			fields = append(fields, errs.FieldError{
				Field: "fullName", Message: "Full name can only contain letters and spaces", Value: name,
			})
		} else {
			u.FullName = name
		}
	}

	if accountType != nil {
		if !IsValidAccountType(string(*accountType)) {
			fields = append(fields, errs.FieldError{
				Field: "accountType", Message: "Account type must be either personal, business, or savings", Value: string(*accountType),
			})
		} else {
			u.AccountType = *accountType
		}
	}

	if len(fields) > 0 {
		return errs.NewValidationErrors(fields)
	}

	u.UpdatedAt = timeProvider.Now()
	return nil
}

// AccountAge returns the age of the account in whole days
func (u *User) AccountAge(now time.Time) int {
	return DaysSince(u.AccountCreatedDate, now)
}

// NormalizeEmail lowercases and trims an email address for case-insensitive matching
func NormalizeEmail(emailAddress string) string {
	return strings.ToLower(strings.TrimSpace(emailAddress))
}

// IsValidAccountType validates if the account type is allowed
func IsValidAccountType(accountType string) bool {
	return accountType == string(AccountPersonal) ||
		accountType == string(AccountBusiness) ||
		accountType == string(AccountSavings)
}
