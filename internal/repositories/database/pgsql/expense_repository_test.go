package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewExpenseQuery_OnlyUser(t *testing.T) {
	q := newExpenseQuery("u1", domain.ExpenseFilter{Category: "   "})

	assert.Equal(t, "WHERE user_id = $1", q.where())
	assert.Equal(t, []any{"u1"}, q.args)
}

func TestNewExpenseQuery_AllDimensions(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(500)

	q := newExpenseQuery("u1", domain.ExpenseFilter{
		StartDate:   &start,
		EndDate:     &end,
		Category:    "50%_off",
		Description: "Mercado",
		MinValue:    &lo,
		MaxValue:    &hi,
		Type:        domain.ExpenseTypeOutflow,
	})

	assert.Equal(t, "WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at <= $3 AND category ILIKE $4 "+
		"AND description ILIKE $5 AND ABS(value) >= $6 AND ABS(value) <= $7 AND value < 0", q.where())
	assert.Len(t, q.args, 7)
	assert.Equal(t, `%50\%\_off%`, q.args[3])
	assert.Equal(t, "$8", q.placeholder(51))
}

func TestNewExpenseQuery_IncomeIncludesZero(t *testing.T) {
	q := newExpenseQuery("u1", domain.ExpenseFilter{Type: domain.ExpenseTypeIncome})
	assert.Equal(t, "WHERE user_id = $1 AND value >= 0", q.where())
}

func TestExpenseQuery_CursorPlaceholders(t *testing.T) {
	q := newExpenseQuery("u1", domain.ExpenseFilter{})
	q.add("(occurred_at, expense_id) < (?, ?)", time.Unix(0, 0), "e9")
	assert.Equal(t, "WHERE user_id = $1 AND (occurred_at, expense_id) < ($2, $3)", q.where())
}

func TestMapWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "goals_user_period_key"}
	err := mapWriteError(dup, "save goal")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "goals_user_period_key")

	other := mapWriteError(errors.New("connection reset"), "save goal")
	assert.NotErrorIs(t, other, apperrors.ErrDuplicate)
	assert.Contains(t, other.Error(), "failed to save goal")
}

func TestMapNoRows(t *testing.T) {
	assert.Equal(t, apperrors.ErrNotFound, mapNoRows(pgx.ErrNoRows, "find goal"))
	assert.NotErrorIs(t, mapNoRows(errors.New("boom"), "find goal"), apperrors.ErrNotFound)
}
