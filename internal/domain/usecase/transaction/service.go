package transaction

import (
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/port/persistence"
)

// Service implements the transaction business logic: the balance mutation
// protocol on creation, owner-scoped reads and updates, soft deletion and
// statistics
type Service struct {
	uow             persistence.UnitOfWork
	userRepo        persistence.UserRepository
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewService creates a new transaction service instance. The plain
// repositories serve read paths; every write that touches the balance goes
// through the unit of work.
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:             uow,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}
