package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
	"github.com/planejamais/planeja_mais/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// DefaultExpenseDescription names expenses saved without a description.
const DefaultExpenseDescription = "Transação"

var errZeroValue = apperrors.NewAppError(http.StatusBadRequest, "O valor deve ser diferente de zero.", apperrors.ErrValidation)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates the expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, opts ...Option) portssvc.ExpenseSvcFacade {
	return &expenseService{BaseService: newBase(opts), expenseRepo: expenseRepo}
}

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Value == nil || req.Value.IsZero() {
		return nil, errZeroValue
	}
	now := s.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Value:       *req.Value,
		Date:        now,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if expense.Description == "" {
		expense.Description = DefaultExpenseDescription
	}
	if expense.Category == "" {
		expense.Category = expense.Description
	}
	if req.Date != nil && !req.Date.IsZero() {
		expense.Date = req.Date.UTC()
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			expense.Description = d
		}
	}
	if req.Category != nil {
		if c := strings.TrimSpace(*req.Category); c != "" {
			expense.Category = c
		}
	}
	if req.Value != nil {
		if req.Value.IsZero() {
			return nil, errZeroValue
		}
		expense.Value = *req.Value
	}
	if req.Date != nil && !req.Date.IsZero() {
		expense.Date = req.Date.UTC()
	}
	expense.Touch(userID, s.Now())

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if err := s.expenseRepo.DeleteExpense(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	return nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpensePage, error) {
	if filter.NextToken != "" {
		if _, _, err := pagination.DecodeToken(filter.NextToken); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "nextToken inválido.", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = dto.DefaultExpenseLimit
	}
	if filter.Limit > dto.MaxExpenseLimit {
		filter.Limit = dto.MaxExpenseLimit
	}

	page, err := s.expenseRepo.ListExpenses(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return page, nil
}

func (s *expenseService) TotalValue(ctx context.Context, userID string, filter domain.ExpenseFilter) (decimal.Decimal, error) {
	total, err := s.expenseRepo.SumExpenses(ctx, userID, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
