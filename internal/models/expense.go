package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the expenses table row.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	UserID      string          `db:"user_id"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Value       decimal.Decimal `db:"value"`
	Date        time.Time       `db:"occurred_at"`
	AuditFields
}
