package services

import (
	"context"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/dto"
	"github.com/shopspring/decimal"
)

// ExpenseSvcFacade manages a user's expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
	ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpensePage, error)

	// TotalValue returns the signed sum over every expense matching filter.
	TotalValue(ctx context.Context, userID string, filter domain.ExpenseFilter) (decimal.Decimal, error)
}
