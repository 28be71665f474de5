package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/port/persistence"
)

// MinPasswordLength is the minimum accepted plaintext password length
const MinPasswordLength = 6

// Service implements registration, login and token-based authentication.
// Hashing and token signing stay behind their ports.
type Service struct {
	userRepo     persistence.UserRepository
	hasher       coreport.PasswordHasher
	tokens       coreport.TokenManager
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new auth service instance
func NewService(
	userRepo persistence.UserRepository,
	hasher coreport.PasswordHasher,
	tokens coreport.TokenManager,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		hasher:       hasher,
		tokens:       tokens,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Authenticate resolves a bearer token to an active user. Used by the
// HTTP middleware on every protected request.
func (s *Service) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	subject, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", errs.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", errs.ErrInvalidToken)
		}
		return nil, err
	}

	if !user.IsAccountActive {
		return nil, errs.ErrAccountDeactivated
	}

	return user, nil
}
