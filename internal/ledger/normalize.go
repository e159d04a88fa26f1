package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDescription is used when a record carries no description at all.
const DefaultDescription = "Transação"

// TxType is the inflow/outflow discriminant. It is never stored; the sign of the
// amount is the only source of truth.
type TxType string

const (
	Entrada TxType = "entrada"
	Saida   TxType = "saida"
)

// Icon names a display glyph (material icon names).
type Icon string

const (
	IconTransfer Icon = "send"
	IconCart     Icon = "shopping_cart"
	IconPill     Icon = "medication"
	IconMoney    Icon = "payments"
	IconReceipt  Icon = "receipt_long"
)

// Transaction is the canonical, normalized ledger entry.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"value"`
	OccurredAt  time.Time       `json:"date"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// HasID reports whether the backend assigned an identifier. Records without one
// cannot be edited or deleted until a reload supplies it.
func (t Transaction) HasID() bool {
	return t.ID != ""
}

// Type derives entrada/saida from the sign.
func (t Transaction) Type() TxType {
	if t.Amount.IsNegative() {
		return Saida
	}
	return Entrada
}

// View is the display-only projection of a transaction.
type View struct {
	Transaction
	Value      string   `json:"displayValue"`
	GroupLabel string   `json:"groupLabel"`
	Tags       []string `json:"tags"`
	Icon       Icon     `json:"icon"`
}

// Display derives the labels, tags and icon of t relative to now.
func (t Transaction) Display(now time.Time) View {
	return View{
		Transaction: t,
		Value:       FormatSigned(t.Amount),
		GroupLabel:  GroupLabel(t.OccurredAt, now),
		Tags:        Tags(t.Category),
		Icon:        IconFor(t.Category, t.Description, t.Amount),
	}
}

// flexString accepts a JSON string or number and keeps its textual form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// flexAmount accepts a JSON number, a numeric string or a formatted currency string.
type flexAmount struct {
	decimal.Decimal
	set bool
}

func (f *flexAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
			f.Decimal, f.set = d, true
			return nil
		}
		f.Decimal, f.set = ParseAmount(s), true
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("invalid value %s: %w", string(b), err)
	}
	f.Decimal, f.set = d, true
	return nil
}

// RawRecord is a transaction as returned by the backend, with every field
// spelling the various API revisions have used.
type RawRecord struct {
	ID            flexString `json:"id"`
	UnderscoreID  flexString `json:"_id"`
	TransactionID flexString `json:"transactionId"`
	Description   *string    `json:"description"`
	Desc          *string    `json:"desc"`
	Value         flexAmount `json:"value"`
	Category      *string    `json:"category"`
	Date          *string    `json:"date"`
	UpdatedAt     *string    `json:"updatedAt"`
}

// Normalize maps a raw record to the canonical transaction.
func Normalize(raw RawRecord, now time.Time) Transaction {
	t := Transaction{
		ID:          firstNonEmpty(string(raw.ID), string(raw.UnderscoreID), string(raw.TransactionID)),
		Description: DefaultDescription,
		Amount:      raw.Value.Decimal,
		OccurredAt:  now,
	}
	if d := firstNonEmpty(deref(raw.Description), deref(raw.Desc)); d != "" {
		t.Description = d
	}
	if raw.Category != nil {
		t.Category = strings.TrimSpace(*raw.Category)
	}
	if ts, ok := parseTimestamp(deref(raw.Date)); ok {
		t.OccurredAt = ts
	}
	t.UpdatedAt = t.OccurredAt
	if ts, ok := parseTimestamp(deref(raw.UpdatedAt)); ok {
		t.UpdatedAt = ts
	}
	return t
}

// NormalizeAll normalizes a batch, keeping input order.
func NormalizeAll(raws []RawRecord, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r, now))
	}
	return out
}

// DecodeList decodes a list response that is either a bare array or wrapped as
// {"data": [...]}.
func DecodeList(body []byte) ([]RawRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	var raws []RawRecord
	if body[0] == '[' {
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode transaction list: %w", err)
		}
		return raws, nil
	}
	var wrapped struct {
		Data []RawRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode wrapped transaction list: %w", err)
	}
	return wrapped.Data, nil
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the capitalized pt-BR month name, 1-based.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

func dateKey(t time.Time) string {
	return strconv.Itoa(t.Year()) + "-" + strconv.Itoa(int(t.Month())) + "-" + strconv.Itoa(t.Day())
}

// GroupLabel returns "Hoje", "Ontem" or "<day> <Month>" for t, in now's location.
func GroupLabel(t, now time.Time) string {
	local := t.In(now.Location())
	switch dateKey(local) {
	case dateKey(now):
		return "Hoje"
	case dateKey(now.AddDate(0, 0, -1)):
		return "Ontem"
	}
	return strconv.Itoa(local.Day()) + " " + MonthName(local.Month())
}

// Tags derives the label list of a category.
func Tags(category string) []string {
	c := Fold(category)
	switch {
	case c == "":
		return nil
	case strings.Contains(c, "alim"):
		return []string{"Alimentação"}
	case strings.Contains(c, "saud"):
		return []string{"Saúde"}
	case containsAny(c, "transf", "pix"):
		return []string{"Transferência"}
	}
	return []string{strings.TrimSpace(category)}
}

// IconFor picks a glyph from category and description keywords; the first
// matching rule wins.
func IconFor(category, description string, amount decimal.Decimal) Icon {
	text := Fold(category + " " + description)
	switch {
	case containsAny(text, "pix", "transf"):
		return IconTransfer
	case containsAny(text, "mercado", "aliment", "comida", "restaurante"):
		return IconCart
	case containsAny(text, "saude", "farm"):
		return IconPill
	case strings.Contains(text, "salario"), amount.Abs().GreaterThan(decimal.NewFromInt(1000)):
		return IconMoney
	}
	return IconReceipt
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
