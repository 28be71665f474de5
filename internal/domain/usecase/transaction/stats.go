package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/port/persistence"
)

// StatsInput optionally bounds statistics by transaction date
type StatsInput struct {
	StartDate string
	EndDate   string
}

// Stats aggregates the user's active transactions: counts and summed
// amounts per type plus the net amount, within the optional date window
func (s *Service) Stats(ctx context.Context, userID uuid.UUID, in StatsInput) (*entity.TransactionStats, error) {
	start, err := ParseDate(in.StartDate, "start date")
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(in.EndDate, "end date")
	if err != nil {
		return nil, err
	}

	stats, err := s.transactionRepo.StatsByType(ctx, userID, persistence.StatsWindow{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		s.logger.Error("Failed to compute transaction statistics", map[string]any{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, err
	}
	return stats, nil
}

// AuditBalance re-derives the running balance from the active ledger
// entries. When no direct balance adjustment was made, the result equals
// the owner's currentBalance.
func (s *Service) AuditBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return s.transactionRepo.SumActiveEffects(ctx, userID)
}
