package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// MaxTransactionAmount bounds a single transaction or adjustment
var MaxTransactionAmount = decimal.NewFromInt(1_000_000)

// ValidateAmount checks a transaction amount: strictly positive, at most
// two decimal places, no larger than MaxTransactionAmount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errs.NewValidationError("amount", "Amount must be greater than 0", amount.String())
	}
	if amount.GreaterThan(MaxTransactionAmount) {
		return errs.NewValidationError("amount", "Amount cannot exceed 1,000,000", amount.String())
	}
	if amount.Exponent() < -MaxDecimalPlaces {
		return errs.NewValidationError("amount",
			fmt.Sprintf("Amount cannot have more than %d decimal places", MaxDecimalPlaces), amount.String())
	}
	return nil
}

// ValidateAdjustment checks a signed balance adjustment delta: non-zero,
// within +/- MaxTransactionAmount, at most two decimal places
func ValidateAdjustment(delta decimal.Decimal) error {
	if delta.IsZero() {
		return errs.NewValidationError("amount", "Amount cannot be zero", delta.String())
	}
	if delta.Abs().GreaterThan(MaxTransactionAmount) {
		return errs.NewValidationError("amount", "Amount must be between -1,000,000 and 1,000,000", delta.String())
	}
	if delta.Exponent() < -MaxDecimalPlaces {
		return errs.NewValidationError("amount",
			fmt.Sprintf("Amount cannot have more than %d decimal places", MaxDecimalPlaces), delta.String())
	}
	return nil
}

// FormatSignedUSD renders an amount the way a statement shows it:
// "+$500.00" for credits, "-$500.00" for debits
func FormatSignedUSD(amount decimal.Decimal, credit bool) string {
	sign := "-"
	if credit {
		sign = "+"
	}
	return sign + "$" + amount.StringFixed(2)
}

// DaysSince returns the whole days elapsed between t and now.
// Future-dated inputs yield zero rather than a negative age.
func DaysSince(t, now time.Time) int {
	if now.Before(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
