package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target for one month, or a whole year when Month is 0.
// A user holds at most one goal per (Year, Month).
type Goal struct {
	GoalID string          `json:"_id"`
	UserID string          `json:"userId"`
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Target decimal.Decimal `json:"goal"`
	AuditFields
}

// IsAnnual reports whether the goal covers the whole year.
func (g Goal) IsAnnual() bool {
	return g.Month == 0
}

// ValidPeriod reports whether year and month name a storable goal period.
func ValidPeriod(year, month int) bool {
	return year >= 2000 && year <= 2100 && month >= 0 && month <= 12
}

// PeriodWindow returns the inclusive-exclusive time range the goal covers.
func (g Goal) PeriodWindow(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	if g.IsAnnual() {
		start := time.Date(g.Year, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	}
	start := time.Date(g.Year, time.Month(g.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
