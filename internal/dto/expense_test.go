package dto

import (
	"testing"
	"time"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListExpensesQuery_ToFilter(t *testing.T) {
	q := ListExpensesQuery{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Category:  " alim ",
		MinValue:  "-10,5",
		MaxValue:  "100",
		Type:      "saida",
	}
	f, err := q.ToFilter()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)
	assert.Equal(t, time.Date(2026, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), *f.EndDate)
	assert.Equal(t, "alim", f.Category)
	assert.Equal(t, "10.5", f.MinValue.String(), "bounds compare magnitudes")
	assert.Equal(t, "100", f.MaxValue.String())
	assert.Equal(t, domain.ExpenseTypeOutflow, f.Type)
	assert.Equal(t, DefaultExpenseLimit, f.Limit)
}

func TestListExpensesQuery_RFC3339EndIsExact(t *testing.T) {
	f, err := ListExpensesQuery{EndDate: "2026-03-31T10:00:00Z"}.ToFilter()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 31, 10, 0, 0, 0, time.UTC), *f.EndDate)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.MinValue)
}

func TestListExpensesQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		q    ListExpensesQuery
	}{
		{name: "bad date", q: ListExpensesQuery{StartDate: "ontem"}},
		{name: "end before start", q: ListExpensesQuery{StartDate: "2026-03-10", EndDate: "2026-03-01"}},
		{name: "bad amount", q: ListExpensesQuery{MinValue: "dez"}},
		{name: "min above max", q: ListExpensesQuery{MinValue: "50", MaxValue: "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.q.ToFilter()
			assert.Error(t, err)
		})
	}
}
