package dto

import (
	"time"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/user"
)

// UserData is the public user payload, password hash excluded
type UserData struct {
	UserID             string     `json:"userId"`
	FullName           string     `json:"fullName"`
	EmailAddress       string     `json:"emailAddress"`
	AccountType        string     `json:"accountType"`
	CurrentBalance     float64    `json:"currentBalance"`
	LastLoginDate      *time.Time `json:"lastLoginDate,omitempty"`
	AccountCreatedDate time.Time  `json:"accountCreatedDate"`
	AccountAge         int        `json:"accountAge"`
	IsAccountActive    bool       `json:"isAccountActive"`
}

// NewUserData maps a user entity to its API payload
func NewUserData(u *entity.User, now time.Time) UserData {
	return UserData{
		UserID:             u.ID.String(),
		FullName:           u.FullName,
		EmailAddress:       u.EmailAddress,
		AccountType:        string(u.AccountType),
		CurrentBalance:     u.CurrentBalance().InexactFloat64(),
		LastLoginDate:      u.LastLoginDate,
		AccountCreatedDate: u.AccountCreatedDate,
		AccountAge:         u.AccountAge(now),
		IsAccountActive:    u.IsAccountActive,
	}
}

// UpdateProfileRequest carries the editable profile fields. Nil means
// "leave unchanged".
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName"`
	AccountType *string `json:"accountType" binding:"omitempty,oneof=personal business savings"`
}

// BalanceData is the payload for balance reads
type BalanceData struct {
	CurrentBalance float64   `json:"currentBalance"`
	Currency       string    `json:"currency"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// AdjustBalanceRequest carries a signed delta for the direct balance
// adjustment path
type AdjustBalanceRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// BalanceAdjustmentData reports a direct balance change
type BalanceAdjustmentData struct {
	PreviousBalance float64   `json:"previousBalance"`
	CurrentBalance  float64   `json:"currentBalance"`
	AmountChanged   float64   `json:"amountChanged"`
	Description     string    `json:"description"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewBalanceAdjustmentData maps an adjustment result to its API payload
func NewBalanceAdjustmentData(adj *user.BalanceAdjustment) BalanceAdjustmentData {
	return BalanceAdjustmentData{
		PreviousBalance: adj.PreviousBalance.InexactFloat64(),
		CurrentBalance:  adj.CurrentBalance.InexactFloat64(),
		AmountChanged:   adj.AmountChanged.InexactFloat64(),
		Description:     adj.Description,
		UpdatedAt:       adj.UpdatedAt,
	}
}
