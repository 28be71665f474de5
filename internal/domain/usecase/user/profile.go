package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
)

// UpdateProfileInput carries the profile fields callers may change.
// Nil means "leave unchanged".
type UpdateProfileInput struct {
	FullName    *string
	AccountType *string
}

// GetProfile retrieves a user by ID
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile changes the full name and/or account type. Email, balance
// and the password hash are out of reach here.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var accountType *entity.AccountType
	if in.AccountType != nil {
		at := entity.AccountType(*in.AccountType)
		accountType = &at
	}

	if err := user.UpdateProfile(in.FullName, accountType, s.timeProvider); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", map[string]any{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Profile updated", map[string]any{
		"user_id": userID.String(),
	})
	return user, nil
}
