package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
)

// TransactionType classifies the direction of a transaction
type TransactionType string

// Transaction types
const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// DefaultCategory is assigned when a transaction omits its category
const DefaultCategory = "General"

// Description and category bounds
const (
	MinDescriptionLength = 3
	MaxDescriptionLength = 200
	MaxCategoryLength    = 50
)

// Transaction represents a single ledger entry against a user's balance.
// Amount, type and the balance snapshots are frozen at creation; only
// description, category and the logical transaction date may change later.
type Transaction struct {
	ID              uuid.UUID       // Unique identifier for the transaction
	UserID          uuid.UUID       // Owning user
	TransactionType TransactionType // credit or debit, immutable
	Amount          decimal.Decimal // Positive, immutable
	Description     string
	Category        string
	TransactionDate time.Time       // Logical date, may be back- or future-dated
	BalanceBefore   decimal.Decimal // Owner's balance when this entry was created
	BalanceAfter    decimal.Decimal // Balance after this entry was applied
	IsActive        bool            // False means soft deleted
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTransaction creates a ledger entry with its fields validated. The
// balance snapshots stay zero until ApplyToBalance runs inside the
// creation protocol.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	description string,
	category string,
	transactionDate time.Time,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}

	var fields []errs.FieldError
	if !IsValidTransactionType(string(transactionType)) {
		fields = append(fields, errs.FieldError{
			Field: "transactionType", Message: "Transaction type must be either credit or debit", Value: string(transactionType),
		})
	}
	if err := ValidateAmount(amount); err != nil {
		fields = append(fields, errs.ValidationFields(err)...)
	}
	if len(description) < MinDescriptionLength || len(description) > MaxDescriptionLength {
		fields = append(fields, errs.FieldError{
			Field: "description", Message: "Description must be between 3 and 200 characters", Value: description,
		})
	}
	if len(category) > MaxCategoryLength {
		fields = append(fields, errs.FieldError{
			Field: "category", Message: "Category cannot exceed 50 characters", Value: category,
		})
	}
	if len(fields) > 0 {
		return nil, errs.NewValidationErrors(fields)
	}

	now := timeProvider.Now()
	if transactionDate.IsZero() {
		transactionDate = now
	}

	return &Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		TransactionType: transactionType,
		Amount:          amount,
		Description:     description,
		Category:        category,
		TransactionDate: transactionDate,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsCredit returns true if this transaction increases the user's balance
func (t *Transaction) IsCredit() bool {
	return t.TransactionType == TypeCredit
}

// IsDebit returns true if this transaction decreases the user's balance
func (t *Transaction) IsDebit() bool {
	return t.TransactionType == TypeDebit
}

// ApplyToBalance freezes the balance snapshots from the owner's current
// balance and returns the resulting balance. A debit that the balance
// cannot cover fails without touching the snapshots, so nothing is
// written for a rejected transaction.
func (t *Transaction) ApplyToBalance(current decimal.Decimal) (decimal.Decimal, error) {
	if t.IsDebit() && current.LessThan(t.Amount) {
		return current, errs.NewInsufficientFundsError(t.UserID.String(), t.Amount, current)
	}

	t.BalanceBefore = current
	if t.IsCredit() {
		t.BalanceAfter = current.Add(t.Amount)
	} else {
		t.BalanceAfter = current.Sub(t.Amount)
	}
	return t.BalanceAfter, nil
}

// SignedEffect returns the contribution of this entry to the running
// balance: +amount for credits, -amount for debits
func (t *Transaction) SignedEffect() decimal.Decimal {
	if t.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// FormattedAmount renders the amount with its sign, e.g. "+$500.00".
// Pure function of stored fields, recomputed on every read.
func (t *Transaction) FormattedAmount() string {
	return FormatSignedUSD(t.Amount, t.IsCredit())
}

// Age returns the transaction age in whole days from its logical date
func (t *Transaction) Age(now time.Time) int {
	return DaysSince(t.TransactionDate, now)
}

// ApplyUpdate mutates the fields callers may change after creation.
// Amount, type and the balance snapshots are deliberately untouchable.
func (t *Transaction) ApplyUpdate(description, category *string, transactionDate *time.Time, timeProvider coreport.TimeProvider) error {
	var fields []errs.FieldError

	if description != nil {
		desc := strings.TrimSpace(*description)
		if len(desc) < MinDescriptionLength || len(desc) > MaxDescriptionLength {
			fields = append(fields, errs.FieldError{
				Field: "description", Message: "Description must be between 3 and 200 characters", Value: desc,
			})
		} else {
			t.Description = desc
		}
	}

	if category != nil {
		cat := strings.TrimSpace(*category)
		if cat == "" {
			cat = DefaultCategory
		}
		if len(cat) > MaxCategoryLength {
			fields = append(fields, errs.FieldError{
				Field: "category", Message: "Category cannot exceed 50 characters", Value: cat,
			})
		} else {
			t.Category = cat
		}
	}

	if transactionDate != nil {
		t.TransactionDate = *transactionDate
	}

	if len(fields) > 0 {
		return errs.NewValidationErrors(fields)
	}

	t.UpdatedAt = timeProvider.Now()
	return nil
}

// Deactivate soft deletes the entry. The row is retained but excluded
// from the running balance, queries and statistics. The owner's balance
// is intentionally left as is.
func (t *Transaction) Deactivate(timeProvider coreport.TimeProvider) {
	t.IsActive = false
	t.UpdatedAt = timeProvider.Now()
}

// IsValidTransactionType validates if the transaction type is allowed
func IsValidTransactionType(transactionType string) bool {
	return transactionType == string(TypeCredit) || transactionType == string(TypeDebit)
}
