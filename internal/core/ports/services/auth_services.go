package services

import (
	"context"
)

// AuthSvcFacade issues and redeems the tokens behind login, e-mail
// confirmation and password reset.
type AuthSvcFacade interface {
	// Login checks credentials and returns an access token. Inactive accounts
	// yield apperrors.ErrInactiveAccount.
	Login(ctx context.Context, login, password string) (string, error)

	// ConfirmAccount activates the account of a validated confirmation token
	// and returns an access token.
	ConfirmAccount(ctx context.Context, userID string) (string, error)

	// ResendConfirmation mails a new confirmation link to an inactive account.
	// Unknown or already active accounts are ignored.
	ResendConfirmation(ctx context.Context, login string) error

	// RequestPasswordReset mails a single-use reset link. Unknown e-mails are ignored.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword redeems a reset token and stores the new password.
	ResetPassword(ctx context.Context, userID, rawToken, password string) error

	// LoginWithGoogle validates a Google ID token, creating the account on
	// first use, and returns an access token.
	LoginWithGoogle(ctx context.Context, idToken string) (string, error)
}
