package repositories

import (
	"context"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseReader defines read operations for expenses. Every call is scoped to one user.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)

	// ListExpenses returns one keyset page, newest first.
	ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpensePage, error)

	// SumExpenses returns the signed sum of every expense matching filter. Paging fields are ignored.
	SumExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) (decimal.Decimal, error)
}

// ExpenseWriter defines write operations for expenses.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
