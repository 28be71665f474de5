package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
)

// TransactionFilter narrows and orders a transaction listing. All fields
// are pre-validated by the query engine; repositories may trust them.
type TransactionFilter struct {
	Type      *entity.TransactionType // nil means both types
	Category  string                  // case-insensitive substring match, empty means any
	StartDate *time.Time              // inclusive lower bound on TransactionDate
	EndDate   *time.Time              // inclusive upper bound on TransactionDate
	SortBy    string                  // whitelisted column key
	SortDesc  bool
	Offset    int
	Limit     int
}

// StatsWindow optionally bounds statistics by transaction date
type StatsWindow struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Create persists a new transaction with its balance snapshots set.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the database is unreachable
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetActiveByID retrieves an active transaction scoped to its owner.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no active transaction matches
	// - ErrDatabaseConnection: If the database is unreachable
	GetActiveByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// Update persists the mutable fields (description, category,
	// transaction date, active flag). Amount, type and snapshots are
	// never written back.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the transaction doesn't exist
	// - ErrDatabaseConnection: If the database is unreachable
	Update(ctx context.Context, transaction *entity.Transaction) error

	// ListActive returns a page of the owner's active transactions and
	// the total count matching the filter.
	ListActive(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*entity.Transaction, int64, error)

	// StatsByType aggregates active transactions by type within the window
	StatsByType(ctx context.Context, userID uuid.UUID, window StatsWindow) (*entity.TransactionStats, error)

	// SumActiveEffects folds all active entries into their net balance
	// effect, in creation order. Used to audit the ledger invariant.
	SumActiveEffects(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
