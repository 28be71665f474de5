package auth

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// RegisterInput carries the registration fields as received from the API
// boundary
type RegisterInput struct {
	FullName     string
	EmailAddress string
	AccountType  string
	Password     string
}

// RegisterResult pairs the created user with its freshly issued token
type RegisterResult struct {
	User      *entity.User
	AuthToken string
}

// Register creates a new account: rejects duplicate emails, hashes the
// password, persists the user and issues the first auth token
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if len(in.Password) < MinPasswordLength {
		return nil, errs.NewValidationError(
			"password", "Password must be at least 6 characters long", nil)
	}

	email := entity.NormalizeEmail(in.EmailAddress)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errs.ErrDuplicateEmail
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(in.FullName, email, entity.AccountType(in.AccountType), passwordHash, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		s.logger.Error("Failed to issue token", map[string]any{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	user.RecordLogin(s.timeProvider)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":      user.ID.String(),
		"account_type": string(user.AccountType),
	})

	return &RegisterResult{User: user, AuthToken: token}, nil
}
