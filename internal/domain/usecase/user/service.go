package user

import (
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/port/persistence"
)

// Service implements profile management and the direct balance-adjustment
// path that bypasses the transaction ledger
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new user service instance
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}
