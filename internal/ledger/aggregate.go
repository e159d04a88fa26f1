package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Total sums the signed amounts of list.
func Total(list []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range list {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// MonthOutflow sums abs(amount) of the outflows that fall inside window.
func MonthOutflow(list []Transaction, window DateRange) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range list {
		if t.Amount.IsNegative() && window.Contains(t.OccurredAt) {
			sum = sum.Add(t.Amount.Abs())
		}
	}
	return sum
}

// Progress is clamp(0, 100, round(|saved| / |target| * 100)). A zero target
// yields 0 rather than an error.
func Progress(saved, target decimal.Decimal) int {
	if target.IsZero() {
		return 0
	}
	pct := RoundUnits(saved.Abs().Div(target.Abs()).Mul(hundred)).IntPart()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

// Remaining is max(0, |target| - |saved|).
func Remaining(saved, target decimal.Decimal) decimal.Decimal {
	left := target.Abs().Sub(saved.Abs())
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// Summary holds the header figures of a ledger view.
type Summary struct {
	Total         decimal.Decimal `json:"total"`
	FilteredTotal decimal.Decimal `json:"filteredTotal"`
	MonthOutflow  decimal.Decimal `json:"monthOutflow"`
	Count         int             `json:"count"`
	FilteredCount int             `json:"filteredCount"`
	Entradas      int             `json:"entradas"`
	Saidas        int             `json:"saidas"`
}

// Summarize computes the header figures for the full list and its filtered subset.
// The outflow KPI always looks at the current month of now.
func Summarize(all, filtered []Transaction, now time.Time) Summary {
	s := Summary{
		Total:         Total(all),
		FilteredTotal: Total(filtered),
		MonthOutflow:  MonthOutflow(all, CurrentMonth(now)),
		Count:         len(all),
		FilteredCount: len(filtered),
	}
	for _, t := range filtered {
		if t.Amount.IsNegative() {
			s.Saidas++
		} else if t.Amount.IsPositive() {
			s.Entradas++
		}
	}
	return s
}
