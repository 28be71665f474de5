package dto

import (
	"time"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/transaction"
)

// CreateTransactionRequest carries the payload for a new ledger entry.
// The transaction date accepts RFC3339 or YYYY-MM-DD.
type CreateTransactionRequest struct {
	TransactionType string  `json:"transactionType" binding:"required,oneof=credit debit"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Description     string  `json:"description" binding:"required"`
	Category        string  `json:"category"`
	TransactionDate *string `json:"transactionDate"`
}

// UpdateTransactionRequest carries the mutable fields. Nil means "leave
// unchanged"; amount and type cannot be updated.
type UpdateTransactionRequest struct {
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	TransactionDate *string `json:"transactionDate"`
}

// TransactionData is the API payload for a single ledger entry
type TransactionData struct {
	TransactionID   string    `json:"transactionId"`
	TransactionType string    `json:"transactionType"`
	Amount          float64   `json:"amount"`
	FormattedAmount string    `json:"formattedAmount"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	TransactionDate time.Time `json:"transactionDate"`
	BalanceBefore   float64   `json:"balanceBefore"`
	BalanceAfter    float64   `json:"balanceAfter"`
	TransactionAge  int       `json:"transactionAge"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewTransactionData maps a transaction entity to its API payload
func NewTransactionData(t *entity.Transaction, now time.Time) TransactionData {
	return TransactionData{
		TransactionID:   t.ID.String(),
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount.InexactFloat64(),
		FormattedAmount: t.FormattedAmount(),
		Description:     t.Description,
		Category:        t.Category,
		TransactionDate: t.TransactionDate,
		BalanceBefore:   t.BalanceBefore.InexactFloat64(),
		BalanceAfter:    t.BalanceAfter.InexactFloat64(),
		TransactionAge:  t.Age(now),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// CreatedTransactionData extends the entry payload with the owner's
// balance after the commit
type CreatedTransactionData struct {
	TransactionData
	CurrentBalance float64 `json:"currentBalance"`
}

// PaginationData describes the returned page
type PaginationData struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

// NewPaginationData maps the query engine's pagination metadata
func NewPaginationData(p transaction.Pagination) PaginationData {
	return PaginationData{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
		Limit:       p.Limit,
	}
}

// TransactionListData pairs a page of entries with its pagination metadata
type TransactionListData struct {
	Transactions []TransactionData `json:"transactions"`
	Pagination   PaginationData    `json:"pagination"`
}

// TypeStatsData aggregates one transaction type
type TypeStatsData struct {
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// StatisticsData summarizes the active ledger
type StatisticsData struct {
	TotalTransactions  int64         `json:"totalTransactions"`
	CreditTransactions TypeStatsData `json:"creditTransactions"`
	DebitTransactions  TypeStatsData `json:"debitTransactions"`
	NetAmount          float64       `json:"netAmount"`
}

// NewStatisticsData maps the aggregation result to its API payload
func NewStatisticsData(stats *entity.TransactionStats) StatisticsData {
	return StatisticsData{
		TotalTransactions: stats.TotalTransactions,
		CreditTransactions: TypeStatsData{
			Count:       stats.CreditTransactions.Count,
			TotalAmount: stats.CreditTransactions.TotalAmount.InexactFloat64(),
		},
		DebitTransactions: TypeStatsData{
			Count:       stats.DebitTransactions.Count,
			TotalAmount: stats.DebitTransactions.TotalAmount.InexactFloat64(),
		},
		NetAmount: stats.NetAmount.InexactFloat64(),
	}
}
