package ledger

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is the display symbol for every amount in the ledger.
const CurrencySymbol = "R$"

var half = decimal.NewFromFloat(0.5)

// ParseAmount converts a locale formatted string such as "R$ 1.234,56" or "-R$ 50"
// into a signed amount. A string that does not parse yields zero, never an error;
// callers treat zero as "no usable amount".
func ParseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}

	cleaned := strings.ReplaceAll(s, CurrencySymbol, "")
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	prefix := numericPrefix(cleaned)
	if prefix == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix returns the longest leading "[+-]digits[.digits]" run of s,
// without a leading plus sign. It returns "" when s does not start with a number.
func numericPrefix(s string) string {
	var b strings.Builder
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			b.WriteByte('-')
		}
		i++
	}
	digits := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		b.WriteByte(s[i])
		digits++
	}
	if i < len(s) && s[i] == '.' {
		frac := 0
		j := i + 1
		for ; j < len(s) && s[j] >= '0' && s[j] <= '9'; j++ {
			frac++
		}
		if frac > 0 {
			b.WriteString(s[i:j])
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	out := b.String()
	if strings.HasPrefix(out, "-.") {
		out = "-0" + out[1:]
	} else if strings.HasPrefix(out, ".") {
		out = "0" + out
	}
	return out
}

// RoundUnits rounds to whole currency units, halves towards positive infinity.
func RoundUnits(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(half).Floor()
}

// groupUnits renders a non-negative whole amount with pt-BR thousands grouping.
func groupUnits(units decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("%d", units.IntPart())
}

// FormatSigned renders "+R$ 4.000" or "-R$ 230". The sign comes from the
// unrounded amount, the magnitude is rounded to whole units.
func FormatSigned(amount decimal.Decimal) string {
	sign := "+"
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + CurrencySymbol + " " + groupUnits(RoundUnits(amount).Abs())
}

// FormatUnsigned renders a KPI magnitude such as "R$ 3.250".
func FormatUnsigned(amount decimal.Decimal) string {
	return CurrencySymbol + " " + groupUnits(RoundUnits(amount).Abs())
}

// FormatOutflow renders a spent-this-month KPI, always with a minus prefix.
func FormatOutflow(amount decimal.Decimal) string {
	return "-" + FormatUnsigned(amount)
}

// FormatInput renders the two-decimal echo used by the transaction modal: "1.234,50".
func FormatInput(amount decimal.Decimal) string {
	abs := amount.Abs().Round(2)
	units := abs.Truncate(0)
	cents := abs.Sub(units).StringFixed(2) // "0.50"
	out := groupUnits(units) + "," + cents[2:]
	if amount.Round(2).IsNegative() {
		out = "-" + out
	}
	return out
}

// ParseInput is the strict parser of the modal value field. Thousands dots are
// dropped and the first comma becomes the decimal point; anything left that is
// not a number is rejected.
func ParseInput(s string) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, false
	}
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// HiddenAmount stands in for every figure while balances are hidden.
const HiddenAmount = CurrencySymbol + " •••••"

// Reveal returns formatted when show is set and HiddenAmount otherwise.
func Reveal(formatted string, show bool) string {
	if show {
		return formatted
	}
	return HiddenAmount
}

// EditValue turns a displayed amount into the bare magnitude used to pre-fill an
// edit form: "-R$ 230" becomes "230".
func EditValue(displayed string) string {
	return RoundUnits(ParseAmount(displayed)).Abs().String()
}
