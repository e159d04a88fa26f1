package services

import (
	"context"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/dto"
)

// UserRegistrationSvc opens accounts. New accounts stay inactive until the
// e-mailed confirmation link is followed.
type UserRegistrationSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
}

// UserProfileSvc reads and edits the caller's own profile. Changing the e-mail
// deactivates the account and sends a new confirmation link.
type UserProfileSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}

// UserLifecycleSvc closes accounts. Deletion is soft for the user row and
// removes the user's expenses and goals.
type UserLifecycleSvc interface {
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade is what the login handlers depend on.
type UserSvcFacade interface {
	UserRegistrationSvc
	UserProfileSvc
	UserLifecycleSvc
}
