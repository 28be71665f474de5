package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the database model for users
type User struct {
	ID                 string          `gorm:"primaryKey;size:36"`
	FullName           string          `gorm:"not null;size:50"`
	EmailAddress       string          `gorm:"uniqueIndex;not null;size:255"`
	AccountType        string          `gorm:"not null;size:20;default:personal"`
	PasswordHash       string          `gorm:"not null;size:255"`
	CurrentBalance     decimal.Decimal `gorm:"not null;type:decimal(15,2)"`
	IsAccountActive    bool            `gorm:"not null;default:true"`
	LastLoginDate      *time.Time
	AccountCreatedDate time.Time `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
