package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
)

var (
	errInvalidPeriod = apperrors.NewAppError(http.StatusBadRequest, "Período inválido.", apperrors.ErrValidation)
	errNegativeGoal  = apperrors.NewAppError(http.StatusBadRequest, "A meta não pode ser negativa.", apperrors.ErrValidation)
)

type goalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates the goal service.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade, opts ...Option) portssvc.GoalSvcFacade {
	return &goalService{BaseService: newBase(opts), goalRepo: goalRepo}
}

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	if req.Month == nil || !domain.ValidPeriod(req.Year, *req.Month) {
		return nil, errInvalidPeriod
	}
	if req.Goal == nil || req.Goal.IsNegative() {
		return nil, errNegativeGoal
	}
	if err := s.ensurePeriodFree(ctx, userID, req.Year, *req.Month, ""); err != nil {
		return nil, err
	}

	now := s.Now()
	goal := domain.Goal{
		GoalID:      uuid.NewString(),
		UserID:      userID,
		Year:        req.Year,
		Month:       *req.Month,
		Target:      *req.Goal,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	// The unique index still catches a concurrent insert of the same period.
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

func (s *goalService) GetGoalByPeriod(ctx context.Context, userID string, year, month int) (*domain.Goal, error) {
	if !domain.ValidPeriod(year, month) {
		return nil, errInvalidPeriod
	}
	goal, err := s.goalRepo.FindGoalByPeriod(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal %d-%d: %w", year, month, err)
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find goal %s: %w", goalID, err)
	}

	year, month := goal.Year, goal.Month
	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if !domain.ValidPeriod(year, month) {
		return nil, errInvalidPeriod
	}
	if year != goal.Year || month != goal.Month {
		if err := s.ensurePeriodFree(ctx, userID, year, month, goal.GoalID); err != nil {
			return nil, err
		}
	}
	if req.Goal != nil {
		if req.Goal.IsNegative() {
			return nil, errNegativeGoal
		}
		goal.Target = *req.Goal
	}
	goal.Year, goal.Month = year, month
	goal.Touch(userID, s.Now())

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	return nil
}

func (s *goalService) ensurePeriodFree(ctx context.Context, userID string, year, month int, exceptID string) error {
	existing, err := s.goalRepo.FindGoalByPeriod(ctx, userID, year, month)
	switch {
	case err == nil && existing.GoalID != exceptID:
		return fmt.Errorf("goal for %d-%d already exists: %w", year, month, apperrors.ErrDuplicate)
	case err == nil, errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check goal period: %w", err)
	}
}
