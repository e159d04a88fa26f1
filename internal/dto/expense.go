package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultExpenseLimit = 50
	MaxExpenseLimit     = 500
)

// CreateExpenseRequest is the body of /expense/create. Value is signed:
// negative for outflows.
type CreateExpenseRequest struct {
	Description string           `json:"description" binding:"max=200"`
	Value       *decimal.Decimal `json:"value" binding:"required"`
	Category    string           `json:"category" binding:"max=120"`
	Date        *time.Time       `json:"date"`
}

// UpdateExpenseRequest is the PATCH body; omitted fields are kept.
type UpdateExpenseRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=200"`
	Value       *decimal.Decimal `json:"value"`
	Category    *string          `json:"category" binding:"omitempty,max=120"`
	Date        *time.Time       `json:"date"`
}

// ListExpensesQuery is the filter query shared by the expense listing and the
// total endpoint.
type ListExpensesQuery struct {
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	Category    string `form:"category"`
	Description string `form:"description"`
	MinValue    string `form:"minValue"`
	MaxValue    string `form:"maxValue"`
	Type        string `form:"type" binding:"omitempty,oneof=entrada saida"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken   string `form:"nextToken"`
}

var queryDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ToFilter parses the raw query into a domain filter.
func (q ListExpensesQuery) ToFilter() (domain.ExpenseFilter, error) {
	f := domain.ExpenseFilter{
		Category:    strings.TrimSpace(q.Category),
		Description: strings.TrimSpace(q.Description),
		Type:        domain.ExpenseType(q.Type),
		Limit:       q.Limit,
		NextToken:   q.NextToken,
	}
	if f.Limit == 0 {
		f.Limit = DefaultExpenseLimit
	}

	var err error
	if f.StartDate, err = parseQueryDate("startDate", q.StartDate, false); err != nil {
		return f, err
	}
	if f.EndDate, err = parseQueryDate("endDate", q.EndDate, true); err != nil {
		return f, err
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, fmt.Errorf("endDate must not be before startDate")
	}
	if f.MinValue, err = parseQueryDecimal("minValue", q.MinValue); err != nil {
		return f, err
	}
	if f.MaxValue, err = parseQueryDecimal("maxValue", q.MaxValue); err != nil {
		return f, err
	}
	if f.MinValue != nil && f.MaxValue != nil && f.MinValue.GreaterThan(*f.MaxValue) {
		return f, fmt.Errorf("minValue must not exceed maxValue")
	}
	return f, nil
}

// parseQueryDate accepts RFC 3339 or a bare date. A bare end date covers the whole day.
func parseQueryDate(name, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range queryDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" && endOfDay {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		return &t, nil
	}
	return nil, fmt.Errorf("invalid %s %q", name, raw)
}

func parseQueryDecimal(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	d = d.Abs()
	return &d, nil
}

// ExpenseResponse is one expense as the web app reads it.
type ExpenseResponse struct {
	ID          string          `json:"_id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ListExpensesResponse struct {
	Data      []ExpenseResponse `json:"data"`
	NextToken string            `json:"nextToken,omitempty"`
}

type TotalResponse struct {
	Total decimal.Decimal `json:"total"`
}

func ToExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ExpenseID,
		Description: e.Description,
		Value:       e.Value,
		Category:    e.Category,
		Type:        string(e.Type()),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.LastUpdatedAt,
	}
}

func ToListExpensesResponse(page *domain.ExpensePage) ListExpensesResponse {
	out := ListExpensesResponse{Data: make([]ExpenseResponse, 0, len(page.Expenses)), NextToken: page.NextToken}
	for _, e := range page.Expenses {
		out.Data = append(out.Data, ToExpenseResponse(e))
	}
	return out
}
