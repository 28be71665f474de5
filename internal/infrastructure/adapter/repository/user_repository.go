package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/model"
)

// UserRepository implements the UserRepository port using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	id, err := uuid.Parse(userModel.ID)
	if err != nil {
		r.logger.Error("Corrupt user ID in database", map[string]any{
			"user_id": userModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: corrupt user id %q", errs.ErrInternalServer, userModel.ID)
	}

	user := &entity.User{
		ID:                 id,
		FullName:           userModel.FullName,
		EmailAddress:       userModel.EmailAddress,
		AccountType:        entity.AccountType(userModel.AccountType),
		PasswordHash:       userModel.PasswordHash,
		IsAccountActive:    userModel.IsAccountActive,
		LastLoginDate:      userModel.LastLoginDate,
		AccountCreatedDate: userModel.AccountCreatedDate,
	}
	user.SetBalance(userModel.CurrentBalance, r.timeProvider)

	// SetBalance stamps UpdatedAt; restore the persisted timestamps
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt

	return user, nil
}

// entityToModel converts a user entity to its database model
func entityToModel(user *entity.User) *model.User {
	return &model.User{
		ID:                 user.ID.String(),
		FullName:           user.FullName,
		EmailAddress:       user.EmailAddress,
		AccountType:        string(user.AccountType),
		PasswordHash:       user.PasswordHash,
		CurrentBalance:     user.CurrentBalance(),
		IsAccountActive:    user.IsAccountActive,
		LastLoginDate:      user.LastLoginDate,
		AccountCreatedDate: user.AccountCreatedDate,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", fields)
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate email address", fields)
		return errs.ErrDuplicateEmail
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), mergeFields(fields, map[string]any{
		"error": err.Error(),
	}))
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

func mergeFields(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"user_id": user.ID.String(),
		"email":   user.EmailAddress,
	})

	result := r.db.WithContext(ctx).Create(entityToModel(user))
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, map[string]any{
			"user_id": user.ID.String(),
			"email":   user.EmailAddress,
		})
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", id.String())
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, map[string]any{
			"user_id": id.String(),
		})
	}

	return r.modelToEntity(&userModel)
}

// GetByIDForUpdate retrieves a user while holding an exclusive row lock for
// the remainder of the surrounding transaction. Postgres takes a
// SELECT ... FOR UPDATE; sqlite has no row locks and serializes writers at
// the transaction level instead.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var userModel model.User
	result := query.First(&userModel, "id = ?", id.String())
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user", result.Error, map[string]any{
			"user_id": id.String(),
		})
	}

	return r.modelToEntity(&userModel)
}

// GetByEmail retrieves a user by email address. Emails are stored
// lowercase, so callers normalize before lookup.
func (r *UserRepository) GetByEmail(ctx context.Context, emailAddress string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "email_address = ?", entity.NormalizeEmail(emailAddress))
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error, map[string]any{
			"email": emailAddress,
		})
	}

	return r.modelToEntity(&userModel)
}

// Update persists profile and login bookkeeping changes
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID.String()).
		Updates(map[string]interface{}{
			"full_name":         user.FullName,
			"account_type":      string(user.AccountType),
			"is_account_active": user.IsAccountActive,
			"last_login_date":   user.LastLoginDate,
			"updated_at":        user.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, map[string]any{
			"user_id": user.ID.String(),
		})
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during update", map[string]any{
			"user_id": user.ID.String(),
		})
		return errs.ErrUserNotFound
	}

	return nil
}

// UpdateBalance persists only the running balance and its timestamp.
// Called inside the balance mutation protocol with the row already locked.
func (r *UserRepository) UpdateBalance(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID.String()).
		Updates(map[string]interface{}{
			"current_balance": user.CurrentBalance(),
			"updated_at":      user.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error, map[string]any{
			"user_id": user.ID.String(),
		})
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during balance update", map[string]any{
			"user_id": user.ID.String(),
		})
		return errs.ErrUserNotFound
	}

	r.logger.Debug("Balance persisted", map[string]any{
		"user_id": user.ID.String(),
		"balance": user.CurrentBalance().StringFixed(2),
	})
	return nil
}
