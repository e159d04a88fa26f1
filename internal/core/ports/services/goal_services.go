package services

import (
	"context"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/dto"
)

// GoalSvcFacade manages a user's savings goals.
type GoalSvcFacade interface {
	// CreateGoal returns apperrors.ErrDuplicate when the period already has a goal.
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)
	GetGoalByPeriod(ctx context.Context, userID string, year, month int) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}
