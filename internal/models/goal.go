package models

import "github.com/shopspring/decimal"

// Goal is the goals table row.
type Goal struct {
	GoalID string          `db:"goal_id"`
	UserID string          `db:"user_id"`
	Year   int             `db:"year"`
	Month  int             `db:"month"`
	Target decimal.Decimal `db:"target"`
	AuditFields
}
