package repositories

import (
	"context"
	"time"

	"github.com/planejamais/planeja_mais/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByLogin retrieves a user whose username or e-mail matches login.
	FindUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// FindUserByEmail retrieves a user by e-mail, ignoring case.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user linked to an external identity.
	FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Username or e-mail clashes yield apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// SetResetTokenHash stores (or clears, with "") the digest of the live reset token.
	SetResetTokenHash(ctx context.Context, userID string, hash string, at time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// ActivateUser marks the account's e-mail as confirmed.
	ActivateUser(ctx context.Context, userID string, at time.Time) error

	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
