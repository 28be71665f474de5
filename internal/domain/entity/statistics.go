package entity

import "github.com/shopspring/decimal"

// TypeStats holds the count and summed amount for one transaction type
type TypeStats struct {
	Count       int64
	TotalAmount decimal.Decimal
}

// TransactionStats aggregates a user's active transactions, optionally
// restricted to a date window
type TransactionStats struct {
	TotalTransactions  int64
	CreditTransactions TypeStats
	DebitTransactions  TypeStats
	NetAmount          decimal.Decimal // credit total minus debit total
}
