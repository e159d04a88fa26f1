package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name          string
		saved, target float64
		want          int
	}{
		{name: "zero target", saved: 500, target: 0, want: 0},
		{name: "nothing saved", saved: 0, target: 1000, want: 0},
		{name: "half way", saved: 50, target: 100, want: 50},
		{name: "exact", saved: 100, target: 100, want: 100},
		{name: "over target clamps", saved: 150, target: 100, want: 100},
		{name: "negative saved uses magnitude", saved: -30, target: 100, want: 30},
		{name: "rounds down", saved: 1, target: 3, want: 33},
		{name: "rounds up", saved: 2, target: 3, want: 67},
		{name: "half percent rounds up", saved: 0.5, target: 100, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(decimal.NewFromFloat(tt.saved), decimal.NewFromFloat(tt.target))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, "70", Remaining(decimal.NewFromInt(30), decimal.NewFromInt(100)).String())
	assert.Equal(t, "0", Remaining(decimal.NewFromInt(150), decimal.NewFromInt(100)).String())
	assert.Equal(t, "100", Remaining(decimal.Zero, decimal.NewFromInt(100)).String())
}

func TestSummarize(t *testing.T) {
	all := []Transaction{
		tx("1", "Mercado", -230, fixedNow),
		tx("2", "Salário", 4000, fixedNow.AddDate(0, 0, -3)),
		tx("3", "Farmácia", -50, fixedNow.AddDate(0, -1, 0)),
		tx("4", "Zero", 0, fixedNow),
	}
	filtered := Filter(all, FilterState{Types: []TxType{Saida}})

	s := Summarize(all, filtered, fixedNow)

	assert.Equal(t, "3720", s.Total.String())
	assert.Equal(t, "-280", s.FilteredTotal.String())
	assert.Equal(t, "230", s.MonthOutflow.String())
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.FilteredCount)
	assert.Equal(t, 0, s.Entradas)
	assert.Equal(t, 2, s.Saidas)
	assert.Equal(t, "-R$ 230", FormatOutflow(s.MonthOutflow))
}
