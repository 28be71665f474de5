package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID              string          `gorm:"primaryKey;size:36"`
	UserID          string          `gorm:"not null;size:36;index:idx_transactions_user_date,priority:1"`
	TransactionType string          `gorm:"not null;size:10;index"`
	Amount          decimal.Decimal `gorm:"not null;type:decimal(15,2)"`
	Description     string          `gorm:"not null;size:200"`
	Category        string          `gorm:"not null;size:50;index"`
	TransactionDate time.Time       `gorm:"not null;index:idx_transactions_user_date,priority:2"`
	BalanceBefore   decimal.Decimal `gorm:"not null;type:decimal(15,2)"`
	BalanceAfter    decimal.Decimal `gorm:"not null;type:decimal(15,2)"`
	IsActive        bool            `gorm:"not null;default:true;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
