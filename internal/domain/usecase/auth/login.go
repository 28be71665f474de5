package auth

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// LoginInput carries the login credentials
type LoginInput struct {
	EmailAddress string
	Password     string
}

// LoginResult pairs the authenticated user with its issued token
type LoginResult struct {
	User      *entity.User
	AuthToken string
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.EmailAddress))
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsAccountActive {
		s.logger.Warn("Login attempt on deactivated account", map[string]any{
			"user_id": user.ID.String(),
		})
		return nil, errs.ErrAccountDeactivated
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		s.logger.Warn("Failed login attempt", map[string]any{
			"user_id": user.ID.String(),
		})
		return nil, errs.ErrInvalidCredentials
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

	s.logger.Info("User logged in", map[string]any{
		"user_id": user.ID.String(),
	})

	return &LoginResult{User: user, AuthToken: token}, nil
}
