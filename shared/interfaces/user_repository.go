package interfaces

import (
	"context"
	"marina-server/shared/models"
)

// UserRepository defines the interface for user data persistence (MongoDB).
// This interface is defined in shared so implementations and consumers can use it.
type UserRepository interface {
	// CreateUser inserts a new user and fills in its ID and timestamps.
	// Returns models.ErrEmailAlreadyExists or models.ErrUserAlreadyExists on unique index violations.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by the hex form of their ID.
	// Returns models.ErrUserNotFound if the user does not exist or the ID is malformed.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by their (normalised) email address.
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns every user, oldest first.
	ListUsers(ctx context.Context) ([]models.User, error)

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)

	// UpdateUserByEmail applies the non-nil fields of upd and returns the updated user.
	// Returns models.ErrUserNotFound or models.ErrUserAlreadyExists.
	UpdateUserByEmail(ctx context.Context, email string, upd models.UserUpdate) (*models.User, error)

	// DeleteUserByEmail removes the user and returns the deleted record.
	// Returns models.ErrUserNotFound if the user does not exist.
	DeleteUserByEmail(ctx context.Context, email string) (*models.User, error)
}
