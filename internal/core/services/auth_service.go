package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/core/ports/notify"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/platform/config"
	"github.com/planejamais/planeja_mais/internal/utils"
	"google.golang.org/api/idtoken"
)

// tokenIssuer mints the three kinds of JWT and builds the links mailed to users.
type tokenIssuer struct {
	secret      string
	issuer      string
	accessTTL   time.Duration
	confirmTTL  time.Duration
	resetTTL    time.Duration
	frontendURL string
}

func newTokenIssuer(cfg *config.Config) *tokenIssuer {
	return &tokenIssuer{
		secret:      cfg.JWTSecret,
		issuer:      cfg.JWTIssuer,
		accessTTL:   cfg.JWTExpiryDuration,
		confirmTTL:  cfg.ConfirmTokenExpiryDuration,
		resetTTL:    cfg.ResetTokenExpiryDuration,
		frontendURL: strings.TrimRight(cfg.FrontendBaseURL, "/"),
	}
}

func (t *tokenIssuer) access(userID string) (string, error) {
	return utils.GenerateJWT(userID, utils.PurposeAccess, t.secret, t.accessTTL, t.issuer)
}

func (t *tokenIssuer) confirmMail(user *domain.User, now time.Time) (notify.Mail, error) {
	token, err := utils.GenerateJWT(user.UserID, utils.PurposeConfirm, t.secret, t.confirmTTL, t.issuer)
	if err != nil {
		return notify.Mail{}, err
	}
	return notify.Mail{
		Kind:      notify.MailConfirmAccount,
		To:        user.Email,
		Name:      user.Name,
		Link:      t.frontendURL + "/auth/confirm-account/" + url.PathEscape(token),
		ExpiresAt: now.Add(t.confirmTTL),
	}, nil
}

func (t *tokenIssuer) resetMail(user *domain.User, now time.Time) (notify.Mail, string, error) {
	token, err := utils.GenerateJWT(user.UserID, utils.PurposeReset, t.secret, t.resetTTL, t.issuer)
	if err != nil {
		return notify.Mail{}, "", err
	}
	return notify.Mail{
		Kind:      notify.MailResetPassword,
		To:        user.Email,
		Name:      user.Name,
		Link:      t.frontendURL + "/auth/change-password/" + url.PathEscape(token),
		ExpiresAt: now.Add(t.resetTTL),
	}, token, nil
}

// GoogleTokenValidator checks a Google ID token for the given audience.
type GoogleTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type authService struct {
	BaseService
	userRepo       portsrepo.UserRepositoryFacade
	tokens         *tokenIssuer
	mailer         notify.Mailer
	googleClientID string
	validateGoogle GoogleTokenValidator
}

// NewAuthService creates the login and account-recovery service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, mailer notify.Mailer, validateGoogle GoogleTokenValidator, opts ...Option) portssvc.AuthSvcFacade {
	if validateGoogle == nil {
		validateGoogle = idtoken.Validate
	}
	return &authService{
		BaseService:    newBase(opts),
		userRepo:       userRepo,
		tokens:         newTokenIssuer(cfg),
		mailer:         mailer,
		googleClientID: cfg.GoogleClientID,
		validateGoogle: validateGoogle,
	}
}

func (s *authService) Login(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	user, err := s.userRepo.FindUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to find user for login: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected, bad credentials", slog.String("user_id", user.UserID))
		return "", apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return "", apperrors.ErrInactiveAccount
	}

	token, err := s.tokens.access(user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func (s *authService) ConfirmAccount(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to find user to confirm: %w", err)
	}
	if !user.IsActive {
		if err := s.userRepo.ActivateUser(ctx, user.UserID, s.Now()); err != nil {
			return "", fmt.Errorf("failed to activate user: %w", err)
		}
		s.LogInfo(ctx, "Account activated", slog.String("user_id", user.UserID))
	}

	token, err := s.tokens.access(user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func (s *authService) ResendConfirmation(ctx context.Context, login string) error {
	user, err := s.userRepo.FindUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Confirmation resend for unknown login ignored")
			return nil
		}
		return fmt.Errorf("failed to find user for confirmation resend: %w", err)
	}
	if user.IsActive {
		return nil
	}
	return s.sendConfirmation(ctx, user)
}

func (s *authService) sendConfirmation(ctx context.Context, user *domain.User) error {
	mail, err := s.tokens.confirmMail(user, s.Now())
	if err != nil {
		return fmt.Errorf("failed to generate confirmation token: %w", err)
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.NewAppError(http.StatusBadRequest, "Informe um e-mail válido.", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset for unknown e-mail ignored")
			return nil
		}
		return fmt.Errorf("failed to find user for password reset: %w", err)
	}

	now := s.Now()
	mail, token, err := s.tokens.resetMail(user, now)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.userRepo.SetResetTokenHash(ctx, user.UserID, utils.HashToken(token), now); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, userID, rawToken, password string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to find user for password reset: %w", err)
	}
	// Only the most recently mailed token is redeemable, and only once.
	if !utils.CompareTokenHash(rawToken, user.ResetTokenHash) {
		return apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.ResetTokenHash = ""
	// The link reached the mailbox, which is what confirmation proves too.
	user.IsActive = true
	user.Touch(user.UserID, s.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.LogInfo(ctx, "Password reset", slog.String("user_id", user.UserID))
	return nil
}

func (s *authService) LoginWithGoogle(ctx context.Context, rawIDToken string) (string, error) {
	if s.googleClientID == "" {
		return "", apperrors.NewAppError(http.StatusServiceUnavailable, "Login com Google indisponível.", nil)
	}
	payload, err := s.validateGoogle(ctx, rawIDToken, s.googleClientID)
	if err != nil {
		s.LogInfo(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return "", apperrors.ErrUnauthorized
	}

	info := googleUserInfo(payload)
	if info.Subject == "" || info.Email == "" || !info.EmailVerified {
		return "", apperrors.ErrUnauthorized
	}

	user, err := s.findOrCreateGoogleUser(ctx, info)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.access(user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func (s *authService) findOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, info.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find google user: %w", err)
	}

	now := s.Now()
	user, err = s.userRepo.FindUserByEmail(ctx, info.Email)
	switch {
	case err == nil:
		// Link the existing account; Google vouched for the address.
		user.ProviderUserID = info.Subject
		user.AuthProvider = domain.ProviderGoogle
		user.IsActive = true
		user.Touch(user.UserID, now)
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	userID := uuid.NewString()
	name := info.Name
	if name == "" {
		name = strings.SplitN(info.Email, "@", 2)[0]
	}
	newUser := domain.User{
		UserID:         userID,
		Name:           name,
		Username:       info.Email,
		Email:          info.Email,
		IsActive:       true,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.Subject,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	s.LogInfo(ctx, "Account created via Google", slog.String("user_id", userID))
	return &newUser, nil
}

func googleUserInfo(p *idtoken.Payload) domain.GoogleUserInfo {
	info := domain.GoogleUserInfo{Subject: p.Subject}
	info.Email, _ = p.Claims["email"].(string)
	info.Email = normalizeEmail(info.Email)
	info.Name, _ = p.Claims["name"].(string)
	info.EmailVerified, _ = p.Claims["email_verified"].(bool)
	return info
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
