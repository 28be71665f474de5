package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// Create persists a new user.
	//
	// Possible errors:
	// - ErrDuplicateEmail: If a user with the same email already exists
	// - ErrDatabaseConnection: If the database is unreachable
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID.
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given ID
	// - ErrDatabaseConnection: If the database is unreachable
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByIDForUpdate retrieves a user by ID while holding an exclusive
	// row lock for the remainder of the surrounding unit of work. This is
	// what serializes concurrent balance mutations for the same user.
	//
	// Possible errors: same as GetByID
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByEmail retrieves a user by email address, case-insensitively.
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given email
	// - ErrDatabaseConnection: If the database is unreachable
	GetByEmail(ctx context.Context, emailAddress string) (*entity.User, error)

	// Update persists profile and login bookkeeping changes.
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrDatabaseConnection: If the database is unreachable
	Update(ctx context.Context, user *entity.User) error

	// UpdateBalance persists only the running balance and its timestamp.
	// Called from inside the balance mutation protocol, after the user
	// row was locked with GetByIDForUpdate.
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrDatabaseConnection: If the database is unreachable
	UpdateBalance(ctx context.Context, user *entity.User) error
}
