package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/core/ports/notify"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
	"github.com/planejamais/planeja_mais/internal/platform/config"
	"github.com/planejamais/planeja_mais/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokens   *tokenIssuer
	mailer   notify.Mailer
}

// NewUserService creates the account management service.
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, mailer notify.Mailer, opts ...Option) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBase(opts),
		userRepo:    userRepo,
		tokens:      newTokenIssuer(cfg),
		mailer:      mailer,
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		Email:        normalizeEmail(req.Email),
		LastEmail:    normalizeEmail(req.LastEmail),
		Birthday:     req.Birthday,
		IsActive:     false,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", userID))

	// The account exists either way; a lost mail is recovered by logging in,
	// which resends it.
	s.mailConfirmation(ctx, &user)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user to update: %w", err)
	}

	emailChanged := false
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Birthday != nil {
		user.Birthday = req.Birthday
	}
	if req.Email != nil {
		if email := normalizeEmail(*req.Email); email != user.Email {
			user.LastEmail = user.Email
			user.Email = email
			// A new address must be confirmed before the next login.
			user.IsActive = false
			emailChanged = true
		}
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.Touch(userID, s.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if emailChanged {
		s.mailConfirmation(ctx, user)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.Now(), userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) mailConfirmation(ctx context.Context, user *domain.User) {
	mail, err := s.tokens.confirmMail(user, s.Now())
	if err == nil {
		err = s.mailer.Send(ctx, mail)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to send confirmation mail", slog.String("user_id", user.UserID))
	}
}
