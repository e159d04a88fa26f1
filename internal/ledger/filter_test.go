package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func tx(id, category string, amount float64, at time.Time) Transaction {
	return Transaction{
		ID:          id,
		Description: category,
		Category:    category,
		Amount:      decimal.NewFromFloat(amount),
		OccurredAt:  at,
		UpdatedAt:   at,
	}
}

func fptr(f float64) *float64 { return &f }

func ids(list []Transaction) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

func TestFilter_CategoryAndTypeComposition(t *testing.T) {
	list := []Transaction{
		tx("1", "Alimentação", -230, fixedNow),
		tx("2", "Salário", 4000, fixedNow),
		tx("3", "Saúde", -50, fixedNow),
	}
	state := FilterState{
		Categories: []string{"alim", "saud"},
		Types:      []TxType{Saida},
	}

	got := Filter(list, state)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestFilter_IsIdempotent(t *testing.T) {
	list := []Transaction{
		tx("1", "Mercado", -120, fixedNow),
		tx("2", "Pix João", 300, fixedNow.AddDate(0, 0, -2)),
		tx("3", "Farmácia", -45, fixedNow.AddDate(0, -1, 0)),
	}
	state := DefaultFilter(fixedNow)
	state.ValueRanges = []ValueRange{NewValueRange(fptr(100), nil)}

	once := Filter(list, state)
	twice := Filter(once, state)
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"1", "2"}, ids(once))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	list := []Transaction{tx("1", "Mercado", -120, fixedNow), tx("2", "Lazer", -20, fixedNow)}
	_ = Filter(list, FilterState{Categories: []string{"lazer"}})
	assert.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
}

func TestFilter_EmptyDimensionsAreUnconstrained(t *testing.T) {
	list := []Transaction{tx("1", "", 0, time.Time{}), tx("2", "x", 10, fixedNow)}
	assert.Len(t, Filter(list, FilterState{}), 2)
}

func TestFilter_ValueUsesMagnitudeAndOrsRanges(t *testing.T) {
	list := []Transaction{
		tx("small", "a", -5, fixedNow),
		tx("mid", "a", -150, fixedNow),
		tx("big", "a", 2000, fixedNow),
	}
	state := FilterState{ValueRanges: []ValueRange{
		NewValueRange(nil, fptr(10)),
		NewValueRange(fptr(1000), nil),
	}}
	assert.Equal(t, []string{"small", "big"}, ids(Filter(list, state)))
}

func TestCurrentMonth_BoundsAreInclusive(t *testing.T) {
	window := CurrentMonth(fixedNow)
	require.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), window.Start)
	require.Equal(t, time.Date(2026, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), window.End)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "exact start", at: window.Start, want: true},
		{name: "exact end", at: window.End, want: true},
		{name: "1ms before start", at: window.Start.Add(-time.Millisecond), want: false},
		{name: "1ms after end", at: window.End.Add(time.Millisecond), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.at))
		})
	}
}

func TestApply_ToggleTwiceRestores(t *testing.T) {
	start := DefaultFilter(fixedNow)

	once := Apply(start, CategoryPatch{Value: "alim", Mode: ModeToggle}, fixedNow)
	assert.Equal(t, []string{"alim"}, once.Categories)

	twice := Apply(once, CategoryPatch{Value: "ALIM", Mode: ModeToggle}, fixedNow)
	assert.Empty(t, twice.Categories)
	assert.Equal(t, start.DateRange, twice.DateRange)
}

func TestApply_EmptyModeIsToggle(t *testing.T) {
	s := Apply(FilterState{}, TypePatch{Value: Saida}, fixedNow)
	assert.Equal(t, []TxType{Saida}, s.Types)
	s = Apply(s, TypePatch{Value: Saida}, fixedNow)
	assert.Empty(t, s.Types)
}

func TestApply_SetAndClear(t *testing.T) {
	s := FilterState{Categories: []string{"a", "b"}}

	s = Apply(s, CategoryPatch{Value: "c", Mode: ModeSet}, fixedNow)
	assert.Equal(t, []string{"c"}, s.Categories)

	s = Apply(s, CategoryPatch{Mode: ModeClear}, fixedNow)
	assert.Empty(t, s.Categories)
}

func TestApply_InvalidPatchesAreNoOps(t *testing.T) {
	start := FilterState{Categories: []string{"alim"}}

	tests := []struct {
		name  string
		patch FilterPatch
	}{
		{name: "blank category", patch: CategoryPatch{Value: "   ", Mode: ModeToggle}},
		{name: "unknown type", patch: TypePatch{Value: "transfer", Mode: ModeToggle}},
		{name: "unbounded value", patch: ValuePatch{Value: ValueRange{}, Mode: ModeToggle}},
		{name: "min above max", patch: ValuePatch{Value: NewValueRange(fptr(10), fptr(5)), Mode: ModeSet}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, start, Apply(start, tt.patch, fixedNow))
		})
	}
}

func TestApply_ValueToggleMatchesByBounds(t *testing.T) {
	s := Apply(FilterState{}, ValuePatch{Value: NewValueRange(fptr(10), fptr(50))}, fixedNow)
	require.Len(t, s.ValueRanges, 1)
	s = Apply(s, ValuePatch{Value: NewValueRange(fptr(10.0), fptr(50.0))}, fixedNow)
	assert.Empty(t, s.ValueRanges)
}

func TestApply_ClearAllResetsToCurrentMonth(t *testing.T) {
	s := FilterState{
		Categories:  []string{"a"},
		Types:       []TxType{Entrada},
		ValueRanges: []ValueRange{NewValueRange(fptr(1), nil)},
	}
	got := Apply(s, ClearAllPatch{}, fixedNow)

	require.NotNil(t, got.DateRange)
	assert.Equal(t, CurrentMonth(fixedNow), *got.DateRange)
	assert.Empty(t, got.Categories)
	assert.Empty(t, got.Types)
	assert.Empty(t, got.ValueRanges)
}

func TestApply_DoesNotAliasPreviousState(t *testing.T) {
	prev := FilterState{Categories: []string{"a", "b", "c"}}
	_ = Apply(prev, CategoryPatch{Value: "a"}, fixedNow)
	assert.Equal(t, []string{"a", "b", "c"}, prev.Categories)
}

func TestParseTypeKeyword(t *testing.T) {
	for in, want := range map[string]TxType{"Entrada": Entrada, "saída": Saida, "SAIDA": Saida} {
		got, ok := ParseTypeKeyword(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseTypeKeyword("transferencia")
	assert.False(t, ok)
}
