package repositories

import (
	"context"

	"github.com/planejamais/planeja_mais/internal/core/domain"
)

// GoalReader defines read operations for goals.
type GoalReader interface {
	FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	FindGoalByPeriod(ctx context.Context, userID string, year, month int) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goals. A second goal for the same
// (user, year, month) yields apperrors.ErrDuplicate.
type GoalWriter interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
