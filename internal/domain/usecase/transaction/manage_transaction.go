package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// UpdateInput carries the mutable transaction fields. Nil means "leave
// unchanged"; amount, type and the balance snapshots cannot be updated.
type UpdateInput struct {
	Description     *string
	Category        *string
	TransactionDate *string // RFC3339 or YYYY-MM-DD
}

// DeleteResult reports a soft deletion and the owner's balance, which the
// deletion leaves untouched
type DeleteResult struct {
	DeletedTransactionID uuid.UUID
	CurrentBalance       decimal.Decimal
}

// Get retrieves one active transaction scoped to its owner
func (s *Service) Get(ctx context.Context, userID, transactionID uuid.UUID) (*entity.Transaction, error) {
	return s.transactionRepo.GetActiveByID(ctx, transactionID, userID)
}

// Update changes description, category and/or the logical transaction
// date of an active transaction owned by the user
func (s *Service) Update(ctx context.Context, userID, transactionID uuid.UUID, in UpdateInput) (*entity.Transaction, error) {
	var txnDate *time.Time
	if in.TransactionDate != nil {
		parsed, err := ParseDate(*in.TransactionDate, "transaction date")
		if err != nil {
			return nil, errs.NewValidationError(
				"transactionDate", "Transaction date must be a valid ISO 8601 date format", *in.TransactionDate)
		}
		txnDate = parsed
	}

	txn, err := s.transactionRepo.GetActiveByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if err := txn.ApplyUpdate(in.Description, in.Category, txnDate, s.timeProvider); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, txn); err != nil {
		s.logger.Error("Failed to update transaction", map[string]any{
			"user_id":        userID.String(),
			"transaction_id": transactionID.String(),
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction updated", map[string]any{
		"user_id":        userID.String(),
		"transaction_id": transactionID.String(),
	})
	return txn, nil
}

// Delete soft deletes an active transaction owned by the user. The row is
// retained with isActive=false and disappears from listings, statistics
// and the ledger fold; the owner's running balance is not adjusted.
func (s *Service) Delete(ctx context.Context, userID, transactionID uuid.UUID) (*DeleteResult, error) {
	txn, err := s.transactionRepo.GetActiveByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	txn.Deactivate(s.timeProvider)
	if err := s.transactionRepo.Update(ctx, txn); err != nil {
		s.logger.Error("Failed to soft delete transaction", map[string]any{
			"user_id":        userID.String(),
			"transaction_id": transactionID.String(),
			"error":          err.Error(),
		})
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction soft deleted", map[string]any{
		"user_id":        userID.String(),
		"transaction_id": transactionID.String(),
		"balance":        user.CurrentBalance().StringFixed(2),
	})

	return &DeleteResult{
		DeletedTransactionID: txn.ID,
		CurrentBalance:       user.CurrentBalance(),
	}, nil
}
