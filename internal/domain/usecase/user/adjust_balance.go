package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
)

// DefaultAdjustmentDescription labels adjustments whose caller gave none
const DefaultAdjustmentDescription = "Balance adjustment"

// BalanceAdjustment reports a direct balance change
type BalanceAdjustment struct {
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
	AmountChanged   decimal.Decimal
	Description     string
	UpdatedAt       time.Time
}

// AdjustBalance applies a signed delta straight to the user's balance.
// No transaction record is created, so this is the one path that can make
// currentBalance diverge from the ledger fold. The user row is locked for
// the duration of the read-modify-write, same as transaction creation.
func (s *Service) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal, description string) (*BalanceAdjustment, error) {
	if err := entity.ValidateAdjustment(delta); err != nil {
		return nil, err
	}
	if description == "" {
		description = DefaultAdjustmentDescription
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	result, err := s.adjustLocked(txCtx, userID, delta, description)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back balance adjustment", map[string]any{
				"user_id": userID.String(),
				"error":   rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	s.logger.Info("Balance adjusted", map[string]any{
		"user_id":          userID.String(),
		"amount_changed":   result.AmountChanged.StringFixed(2),
		"previous_balance": result.PreviousBalance.StringFixed(2),
		"current_balance":  result.CurrentBalance.StringFixed(2),
	})
	return result, nil
}

func (s *Service) adjustLocked(txCtx context.Context, userID uuid.UUID, delta decimal.Decimal, description string) (*BalanceAdjustment, error) {
	userRepo := s.uow.GetUserRepository(txCtx)

	user, err := userRepo.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	previous, current, err := user.AdjustBalance(delta, s.timeProvider)
	if err != nil {
		s.logger.Warn("Balance adjustment rejected", map[string]any{
			"user_id":         userID.String(),
			"delta":           delta.StringFixed(2),
			"current_balance": previous.StringFixed(2),
		})
		return nil, err
	}

	if err := userRepo.UpdateBalance(txCtx, user); err != nil {
		return nil, err
	}

	return &BalanceAdjustment{
		PreviousBalance: previous,
		CurrentBalance:  current,
		AmountChanged:   delta,
		Description:     description,
		UpdatedAt:       user.UpdatedAt,
	}, nil
}
