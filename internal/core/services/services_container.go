package services

import (
	"github.com/planejamais/planeja_mais/internal/core/ports/notify"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer notify.Mailer, opts ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:    NewUserService(cfg, repos.UserRepo, mailer, opts...),
		Auth:    NewAuthService(cfg, repos.UserRepo, mailer, nil, opts...),
		Expense: NewExpenseService(repos.ExpenseRepo, opts...),
		Goal:    NewGoalService(repos.GoalRepo, opts...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.AuthSvcFacade    = (*authService)(nil)
	_ portssvc.ExpenseSvcFacade = (*expenseService)(nil)
	_ portssvc.GoalSvcFacade    = (*goalService)(nil)
)
