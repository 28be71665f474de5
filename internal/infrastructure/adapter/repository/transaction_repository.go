package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/model"
)

// sortColumns maps the query engine's whitelisted sort keys to columns
var sortColumns = map[string]string{
	"transactionDate": "transaction_date",
	"amount":          "amount",
	"createdAt":       "created_at",
	"category":        "category",
}

// TransactionRepository implements the TransactionRepository port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *TransactionRepository) modelToEntity(txnModel *model.Transaction) (*entity.Transaction, error) {
	id, err := uuid.Parse(txnModel.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt transaction id %q", errs.ErrInternalServer, txnModel.ID)
	}
	userID, err := uuid.Parse(txnModel.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt user id %q on transaction %s", errs.ErrInternalServer, txnModel.UserID, txnModel.ID)
	}

	return &entity.Transaction{
		ID:              id,
		UserID:          userID,
		TransactionType: entity.TransactionType(txnModel.TransactionType),
		Amount:          txnModel.Amount,
		Description:     txnModel.Description,
		Category:        txnModel.Category,
		TransactionDate: txnModel.TransactionDate,
		BalanceBefore:   txnModel.BalanceBefore,
		BalanceAfter:    txnModel.BalanceAfter,
		IsActive:        txnModel.IsActive,
		CreatedAt:       txnModel.CreatedAt,
		UpdatedAt:       txnModel.UpdatedAt,
	}, nil
}

func transactionToModel(txn *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:              txn.ID.String(),
		UserID:          txn.UserID.String(),
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount,
		Description:     txn.Description,
		Category:        txn.Category,
		TransactionDate: txn.TransactionDate,
		BalanceBefore:   txn.BalanceBefore,
		BalanceAfter:    txn.BalanceAfter,
		IsActive:        txn.IsActive,
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Transaction not found", fields)
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), mergeFields(fields, map[string]any{
		"error": err.Error(),
	}))
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new transaction with its balance snapshots set
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).Create(transactionToModel(transaction))
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, map[string]any{
			"transaction_id": transaction.ID.String(),
			"user_id":        transaction.UserID.String(),
		})
	}

	return nil
}

// GetActiveByID retrieves an active transaction scoped to its owner
func (r *TransactionRepository) GetActiveByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", id.String(), userID.String(), true).
		First(&txnModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, map[string]any{
			"transaction_id": id.String(),
			"user_id":        userID.String(),
		})
	}

	return r.modelToEntity(&txnModel)
}

// Update persists the mutable fields. Amount, type and the balance
// snapshots are never written back.
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID.String(), transaction.UserID.String()).
		Updates(map[string]interface{}{
			"description":      transaction.Description,
			"category":         transaction.Category,
			"transaction_date": transaction.TransactionDate,
			"is_active":        transaction.IsActive,
			"updated_at":       transaction.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, map[string]any{
			"transaction_id": transaction.ID.String(),
		})
	}

	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	return nil
}

// ListActive returns a page of the owner's active transactions plus the
// total count matching the filter
func (r *TransactionRepository) ListActive(ctx context.Context, userID uuid.UUID, filter persistence.TransactionFilter) ([]*entity.Transaction, int64, error) {
	// Fresh builder per statement; sharing one chain between Count and
	// Find leaks the count's SELECT into the listing.
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("user_id = ? AND is_active = ?", userID.String(), true)
		return applyFilter(query, filter)
	}

	var totalCount int64
	if err := scoped().Count(&totalCount).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting transactions", err, map[string]any{
			"user_id": userID.String(),
		})
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "transaction_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var txnModels []model.Transaction
	err := scoped().
		Order(fmt.Sprintf("%s %s", column, direction)).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&txnModels).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing transactions", err, map[string]any{
			"user_id": userID.String(),
		})
	}

	transactions := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txn, err := r.modelToEntity(&txnModels[i])
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, totalCount, nil
}

// applyFilter narrows the query with the pre-validated filter fields
func applyFilter(query *gorm.DB, filter persistence.TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("transaction_type = ?", string(*filter.Type))
	}
	if filter.Category != "" {
		pattern := "%" + strings.ToLower(filter.Category) + "%"
		query = query.Where("LOWER(category) LIKE ?", pattern)
	}
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filter.EndDate)
	}
	return query
}

// typeAggregate receives one GROUP BY row per transaction type
type typeAggregate struct {
	TransactionType string
	Count           int64
	TotalAmount     decimal.Decimal
}

// StatsByType aggregates active transactions by type within the window
func (r *TransactionRepository) StatsByType(ctx context.Context, userID uuid.UUID, window persistence.StatsWindow) (*entity.TransactionStats, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("transaction_type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Where("user_id = ? AND is_active = ?", userID.String(), true)

	if window.StartDate != nil {
		query = query.Where("transaction_date >= ?", *window.StartDate)
	}
	if window.EndDate != nil {
		query = query.Where("transaction_date <= ?", *window.EndDate)
	}

	var rows []typeAggregate
	if err := query.Group("transaction_type").Scan(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("aggregating transactions", err, map[string]any{
			"user_id": userID.String(),
		})
	}

	stats := &entity.TransactionStats{NetAmount: decimal.Zero}
	for _, row := range rows {
		typeStats := entity.TypeStats{Count: row.Count, TotalAmount: row.TotalAmount}
		switch entity.TransactionType(row.TransactionType) {
		case entity.TypeCredit:
			stats.CreditTransactions = typeStats
		case entity.TypeDebit:
			stats.DebitTransactions = typeStats
		}
		stats.TotalTransactions += row.Count
	}
	stats.NetAmount = stats.CreditTransactions.TotalAmount.Sub(stats.DebitTransactions.TotalAmount)

	return stats, nil
}

// SumActiveEffects folds all active entries into their net balance effect.
// Used to audit that the running balance matches the ledger.
func (r *TransactionRepository) SumActiveEffects(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var net decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN transaction_type = 'credit' THEN amount ELSE -amount END), 0)").
		Where("user_id = ? AND is_active = ?", userID.String(), true).
		Scan(&net).Error
	if err != nil {
		return decimal.Zero, r.handleDatabaseError("summing transactions", err, map[string]any{
			"user_id": userID.String(),
		})
	}

	return net, nil
}
