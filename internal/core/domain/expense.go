package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType splits movements by sign: zero counts as income.
type ExpenseType string

const (
	ExpenseTypeIncome  ExpenseType = "entrada"
	ExpenseTypeOutflow ExpenseType = "saida"
)

// Expense is one signed money movement. Negative values are outflows.
type Expense struct {
	ExpenseID   string          `json:"_id"`
	UserID      string          `json:"userId"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	Date        time.Time       `json:"date"`
	AuditFields
}

// Type reports whether the expense is income or outflow.
func (e Expense) Type() ExpenseType {
	if e.Value.IsNegative() {
		return ExpenseTypeOutflow
	}
	return ExpenseTypeIncome
}

// ExpenseFilter narrows an expense listing. Zero values leave a dimension
// unconstrained. MinValue and MaxValue compare against the magnitude.
type ExpenseFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Category    string
	Description string
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	Type        ExpenseType
	Limit       int
	NextToken   string
}

// ExpensePage is one keyset page of expenses.
type ExpensePage struct {
	Expenses  []Expense
	NextToken string
}
