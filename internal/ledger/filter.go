package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Mode selects how a patch mutates one filter dimension.
type Mode string

const (
	ModeToggle Mode = "toggle"
	ModeSet    Mode = "set"
	ModeClear  Mode = "clear"
)

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether ts lies inside the window, bounds included.
func (r DateRange) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// CurrentMonth spans the calendar month of now, from its first instant to its
// last millisecond.
func CurrentMonth(now time.Time) DateRange {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
	}
}

// ValueRange bounds abs(amount). A nil bound is open.
type ValueRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// NewValueRange builds a range from optional float bounds.
func NewValueRange(min, max *float64) ValueRange {
	var r ValueRange
	if min != nil {
		d := decimal.NewFromFloat(*min)
		r.Min = &d
	}
	if max != nil {
		d := decimal.NewFromFloat(*max)
		r.Max = &d
	}
	return r
}

// Valid rejects ranges with no bound at all or with min > max.
func (v ValueRange) Valid() bool {
	if v.Min == nil && v.Max == nil {
		return false
	}
	if v.Min != nil && v.Max != nil && v.Min.GreaterThan(*v.Max) {
		return false
	}
	return true
}

// Contains reports whether magnitude falls inside the range.
func (v ValueRange) Contains(magnitude decimal.Decimal) bool {
	if v.Min != nil && magnitude.LessThan(*v.Min) {
		return false
	}
	if v.Max != nil && magnitude.GreaterThan(*v.Max) {
		return false
	}
	return true
}

// Equal compares bounds by value.
func (v ValueRange) Equal(o ValueRange) bool {
	return boundEqual(v.Min, o.Min) && boundEqual(v.Max, o.Max)
}

func boundEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// FilterState is the ephemeral filter of a ledger view session. Dimensions are
// ANDed together; values inside one dimension are ORed.
type FilterState struct {
	DateRange   *DateRange   `json:"dateRange,omitempty"`
	Categories  []string     `json:"categories,omitempty"`
	Types       []TxType     `json:"types,omitempty"`
	ValueRanges []ValueRange `json:"valueRanges,omitempty"`
}

// DefaultFilter is the state a view starts with: current month, nothing else.
func DefaultFilter(now time.Time) FilterState {
	return ClearAll(now)
}

// ClearAll empties categories, types and values and resets the date range to the
// current month. It is not an unconstrained clear.
func ClearAll(now time.Time) FilterState {
	r := CurrentMonth(now)
	return FilterState{DateRange: &r}
}

// Clone returns a deep copy.
func (s FilterState) Clone() FilterState {
	out := FilterState{
		Categories:  append([]string(nil), s.Categories...),
		Types:       append([]TxType(nil), s.Types...),
		ValueRanges: append([]ValueRange(nil), s.ValueRanges...),
	}
	if s.DateRange != nil {
		r := *s.DateRange
		out.DateRange = &r
	}
	return out
}

// FilterPatch is one mutation of a FilterState, broadcast between views.
type FilterPatch interface {
	isFilterPatch()
}

// CategoryPatch mutates the category set.
type CategoryPatch struct {
	Value string
	Mode  Mode
}

// TypePatch mutates the type set.
type TypePatch struct {
	Value TxType
	Mode  Mode
}

// ValuePatch mutates the value range set.
type ValuePatch struct {
	Value ValueRange
	Mode  Mode
}

// CurrentMonthPatch moves the date range to the current month.
type CurrentMonthPatch struct{}

// ClearAllPatch resets the whole state, see ClearAll.
type ClearAllPatch struct{}

func (CategoryPatch) isFilterPatch()     {}
func (TypePatch) isFilterPatch()         {}
func (ValuePatch) isFilterPatch()        {}
func (CurrentMonthPatch) isFilterPatch() {}
func (ClearAllPatch) isFilterPatch()     {}

// Apply returns the state that results from applying p to s. Invalid patches
// leave the state untouched.
func Apply(s FilterState, p FilterPatch, now time.Time) FilterState {
	next := s.Clone()
	switch p := p.(type) {
	case CategoryPatch:
		value := strings.TrimSpace(p.Value)
		if value == "" && p.Mode != ModeClear {
			return next
		}
		next.Categories = mutate(next.Categories, value, p.Mode, strings.EqualFold)
	case TypePatch:
		if p.Mode != ModeClear && p.Value != Entrada && p.Value != Saida {
			return next
		}
		next.Types = mutate(next.Types, p.Value, p.Mode, func(a, b TxType) bool { return a == b })
	case ValuePatch:
		if p.Mode != ModeClear && !p.Value.Valid() {
			return next
		}
		next.ValueRanges = mutate(next.ValueRanges, p.Value, p.Mode, ValueRange.Equal)
	case CurrentMonthPatch:
		r := CurrentMonth(now)
		next.DateRange = &r
	case ClearAllPatch:
		return ClearAll(now)
	}
	return next
}

func mutate[T any](set []T, v T, mode Mode, eq func(a, b T) bool) []T {
	switch mode {
	case ModeClear:
		return nil
	case ModeSet:
		return []T{v}
	}
	for i, existing := range set {
		if eq(existing, v) {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, v)
}

// ParseTypeKeyword maps user input ("Entrada", "saída", "saida") to a TxType.
func ParseTypeKeyword(s string) (TxType, bool) {
	switch Fold(s) {
	case "entrada":
		return Entrada, true
	case "saida":
		return Saida, true
	}
	return "", false
}

// Filter derives the subset of list that matches s. It always works from the
// full list and never mutates it.
func Filter(list []Transaction, s FilterState) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, t := range list {
		if s.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Matches applies every active dimension to t.
func (s FilterState) Matches(t Transaction) bool {
	if s.DateRange != nil && !s.DateRange.Contains(t.OccurredAt) {
		return false
	}
	if len(s.Categories) > 0 && !matchesCategory(t.Category, s.Categories) {
		return false
	}
	if len(s.Types) > 0 && !matchesType(t.Amount, s.Types) {
		return false
	}
	if len(s.ValueRanges) > 0 && !matchesValue(t.Amount.Abs(), s.ValueRanges) {
		return false
	}
	return true
}

// matchesCategory is a case and accent insensitive substring match, so "saud"
// finds "Saúde".
func matchesCategory(category string, wanted []string) bool {
	c := Fold(category)
	for _, w := range wanted {
		if strings.Contains(c, Fold(w)) {
			return true
		}
	}
	return false
}

func matchesType(amount decimal.Decimal, types []TxType) bool {
	for _, t := range types {
		if t == Entrada && amount.IsPositive() {
			return true
		}
		if t == Saida && amount.IsNegative() {
			return true
		}
	}
	return false
}

func matchesValue(magnitude decimal.Decimal, ranges []ValueRange) bool {
	for _, r := range ranges {
		if r.Contains(magnitude) {
			return true
		}
	}
	return false
}
