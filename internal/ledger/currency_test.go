package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "0"},
		{name: "grouped with cents", in: "R$ 1.234,56", want: "1234.56"},
		{name: "negative signed", in: "-R$ 230", want: "-230"},
		{name: "positive signed", in: "+R$ 4.000", want: "4000"},
		{name: "plain number", in: "50", want: "50"},
		{name: "trailing garbage keeps prefix", in: "12abc", want: "12"},
		{name: "no number", in: "abc", want: "0"},
		{name: "only symbol", in: "R$", want: "0"},
		{name: "leading decimal comma", in: ",5", want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in).String())
		})
	}
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{name: "income grouped", amount: decimal.NewFromInt(4000), want: "+R$ 4.000"},
		{name: "outflow", amount: decimal.NewFromInt(-230), want: "-R$ 230"},
		{name: "half rounds up", amount: decimal.NewFromFloat(2.5), want: "+R$ 3"},
		{name: "negative half rounds towards zero", amount: decimal.NewFromFloat(-230.5), want: "-R$ 230"},
		{name: "small positive", amount: decimal.NewFromFloat(0.4), want: "+R$ 0"},
		{name: "small negative keeps sign", amount: decimal.NewFromFloat(-0.4), want: "-R$ 0"},
		{name: "millions", amount: decimal.NewFromInt(1234567), want: "+R$ 1.234.567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSigned(tt.amount))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, f := range []float64{3250, -230.5, 0.4, -1234.49, 0} {
		formatted := FormatSigned(decimal.NewFromFloat(f))
		assert.Equal(t, formatted, FormatSigned(ParseAmount(formatted)), "round trip of %v", f)
	}
}

func TestFormatParseRoundTrip_NegativeBelowHalfLosesSign(t *testing.T) {
	formatted := FormatSigned(decimal.NewFromFloat(-0.4))
	assert.Equal(t, "-R$ 0", formatted)
	assert.Equal(t, "+R$ 0", FormatSigned(ParseAmount(formatted)))
}

func TestFormatUnsignedAndOutflow(t *testing.T) {
	assert.Equal(t, "R$ 3.250", FormatUnsigned(decimal.NewFromInt(3250)))
	assert.Equal(t, "R$ 3.250", FormatUnsigned(decimal.NewFromInt(-3250)))
	assert.Equal(t, "-R$ 280", FormatOutflow(decimal.NewFromInt(280)))
}

func TestFormatInput(t *testing.T) {
	assert.Equal(t, "1.234,50", FormatInput(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "0,05", FormatInput(decimal.NewFromFloat(0.05)))
	assert.Equal(t, "-0,50", FormatInput(decimal.NewFromFloat(-0.5)))
	assert.Equal(t, "10,00", FormatInput(decimal.NewFromInt(10)))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "1.234,50", want: "1234.5", wantOK: true},
		{in: "  230 ", want: "230", wantOK: true},
		{in: "-50,25", want: "-50.25", wantOK: true},
		{in: "", want: "0", wantOK: false},
		{in: "abc", want: "0", wantOK: false},
		{in: "12,3,4", want: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInput(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEditValue(t *testing.T) {
	assert.Equal(t, "230", EditValue("-R$ 230"))
	assert.Equal(t, "4000", EditValue("+R$ 4.000"))
	assert.Equal(t, "0", EditValue("nada"))
}

func TestReveal(t *testing.T) {
	assert.Equal(t, "-R$ 230", Reveal("-R$ 230", true))
	assert.Equal(t, "R$ •••••", Reveal("-R$ 230", false))
	assert.Equal(t, HiddenAmount, Reveal(FormatUnsigned(decimal.NewFromInt(3250)), false))
}
