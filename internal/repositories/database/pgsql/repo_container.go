package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	goalRepo := newPgxGoalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:    userRepo,
		ExpenseRepo: expenseRepo,
		GoalRepo:    goalRepo,
	}
}
