package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// CreateInput carries the caller-supplied fields for a new transaction.
// Inputs arrive shape-validated from the API boundary; domain invariants
// are re-checked here.
type CreateInput struct {
	TransactionType string
	Amount          decimal.Decimal
	Description     string
	Category        string
	TransactionDate *time.Time
}

// CreateResult pairs the persisted transaction with the owner's balance
// after the commit
type CreateResult struct {
	Transaction    *entity.Transaction
	CurrentBalance decimal.Decimal
}

// Create runs the balance mutation protocol:
//
//  1. Build and validate the transaction entity.
//  2. Inside one database transaction, load the owner's balance under an
//     exclusive row lock.
//  3. Snapshot balanceBefore/balanceAfter; reject an uncovered debit with
//     InsufficientFunds before anything is written.
//  4. Persist the transaction and the updated balance, then commit.
//
// The row lock serializes concurrent creations for the same user, and the
// single commit guarantees no transaction row exists without its matching
// balance update.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*CreateResult, error) {
	txnDate := time.Time{}
	if in.TransactionDate != nil {
		txnDate = *in.TransactionDate
	}

	txn, err := entity.NewTransaction(
		userID,
		entity.TransactionType(in.TransactionType),
		in.Amount,
		in.Description,
		in.Category,
		txnDate,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	result, err := s.createLocked(txCtx, userID, txn)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back transaction creation", map[string]any{
				"user_id": userID.String(),
				"error":   rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit transaction creation", map[string]any{
			"user_id":        userID.String(),
			"transaction_id": txn.ID.String(),
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	s.logger.Info("Transaction created", map[string]any{
		"user_id":          userID.String(),
		"transaction_id":   txn.ID.String(),
		"transaction_type": string(txn.TransactionType),
		"amount":           txn.Amount.StringFixed(2),
		"balance_before":   txn.BalanceBefore.StringFixed(2),
		"balance_after":    txn.BalanceAfter.StringFixed(2),
	})

	return result, nil
}

// createLocked performs the protocol steps that must happen under the lock
func (s *Service) createLocked(txCtx context.Context, userID uuid.UUID, txn *entity.Transaction) (*CreateResult, error) {
	userRepo := s.uow.GetUserRepository(txCtx)
	txnRepo := s.uow.GetTransactionRepository(txCtx)

	user, err := userRepo.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	newBalance, err := txn.ApplyToBalance(user.CurrentBalance())
	if err != nil {
		s.logger.Warn("Transaction rejected for insufficient funds", map[string]any{
			"user_id":         userID.String(),
			"amount":          txn.Amount.StringFixed(2),
			"current_balance": user.CurrentBalance().StringFixed(2),
		})
		return nil, err
	}

	if err := txnRepo.Create(txCtx, txn); err != nil {
		return nil, err
	}

	user.SetBalance(newBalance, s.timeProvider)
	if err := userRepo.UpdateBalance(txCtx, user); err != nil {
		return nil, err
	}

	return &CreateResult{Transaction: txn, CurrentBalance: newBalance}, nil
}

// ParseID converts a path parameter into a transaction identifier
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a valid transaction ID", errs.ErrInvalidIDFormat, raw)
	}
	return id, nil
}
