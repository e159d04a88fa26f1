package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	"github.com/planejamais/planeja_mais/internal/models"
	"github.com/planejamais/planeja_mais/internal/utils/mapping"
	"github.com/planejamais/planeja_mais/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, description, category, value, occurred_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Description,
		&m.Category,
		&m.Value,
		&m.Date,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// expenseQuery accumulates WHERE conditions with numbered placeholders.
type expenseQuery struct {
	conditions []string
	args       []any
}

func (q *expenseQuery) add(cond string, args ...any) {
	for _, a := range args {
		q.args = append(q.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(q.args)), 1)
	}
	q.conditions = append(q.conditions, cond)
}

func (q *expenseQuery) where() string {
	return "WHERE " + strings.Join(q.conditions, " AND ")
}

// placeholder reserves the next argument slot, for LIMIT.
func (q *expenseQuery) placeholder(arg any) string {
	q.args = append(q.args, arg)
	return "$" + strconv.Itoa(len(q.args))
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// newExpenseQuery translates the non-paging part of filter.
func newExpenseQuery(userID string, filter domain.ExpenseFilter) *expenseQuery {
	q := &expenseQuery{}
	q.add("user_id = ?", userID)
	if filter.StartDate != nil {
		q.add("occurred_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q.add("occurred_at <= ?", *filter.EndDate)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		q.add("category ILIKE ?", "%"+escapeLike(c)+"%")
	}
	if d := strings.TrimSpace(filter.Description); d != "" {
		q.add("description ILIKE ?", "%"+escapeLike(d)+"%")
	}
	if filter.MinValue != nil {
		q.add("ABS(value) >= ?", *filter.MinValue)
	}
	if filter.MaxValue != nil {
		q.add("ABS(value) <= ?", *filter.MaxValue)
	}
	switch filter.Type {
	case domain.ExpenseTypeIncome:
		q.add("value >= 0")
	case domain.ExpenseTypeOutflow:
		q.add("value < 0")
	}
	return q
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND user_id = $2;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID, userID))
	if err != nil {
		return nil, mapNoRows(err, "find expense "+expenseID)
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// ListExpenses pages by (occurred_at, expense_id) descending. One extra row is
// fetched to know whether a next page exists.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpensePage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	q := newExpenseQuery(userID, filter)
	if filter.NextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(filter.NextToken)
		if err != nil {
			return nil, apperrors.NewAppError(400, "nextToken inválido.", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		q.add("(occurred_at, expense_id) < (?, ?)", lastDate, lastID)
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses ` + q.where() +
		` ORDER BY occurred_at DESC, expense_id DESC LIMIT ` + q.placeholder(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses := make([]models.Expense, 0, limit+1)
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	page := &domain.ExpensePage{}
	if len(modelExpenses) > limit {
		last := modelExpenses[limit-1]
		page.NextToken = pagination.EncodeToken(last.Date, last.ExpenseID)
		modelExpenses = modelExpenses[:limit]
	}
	page.Expenses = mapping.ToDomainExpenseSlice(modelExpenses)
	return page, nil
}

func (r *PgxExpenseRepository) SumExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) (decimal.Decimal, error) {
	q := newExpenseQuery(userID, filter)
	query := `SELECT COALESCE(SUM(value), 0) FROM expenses ` + q.where() + `;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, q.args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.UserID,
		m.Description,
		m.Category,
		m.Value,
		m.Date,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save expense")
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET description = $1, category = $2, value = $3, occurred_at = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $7 AND user_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Description,
		m.Category,
		m.Value,
		m.Date,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ExpenseID,
		m.UserID,
	)
	if err != nil {
		return mapWriteError(err, "update expense")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", m.ExpenseID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2;`, expenseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return nil
}
