package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/shopspring/decimal"
)

// ExpenseQuery holds the optional filters of the list and sum endpoints.
type ExpenseQuery struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Category    string
	Description string
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	Type        ledger.TxType
	Limit       int
	NextToken   string
}

// Values encodes the query string. Unset fields are omitted.
func (q ExpenseQuery) Values() url.Values {
	v := url.Values{}
	if q.StartDate != nil {
		v.Set("startDate", q.StartDate.UTC().Format(time.RFC3339Nano))
	}
	if q.EndDate != nil {
		v.Set("endDate", q.EndDate.UTC().Format(time.RFC3339Nano))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Description != "" {
		v.Set("description", q.Description)
	}
	if q.MinValue != nil {
		v.Set("minValue", q.MinValue.String())
	}
	if q.MaxValue != nil {
		v.Set("maxValue", q.MaxValue.String())
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.NextToken != "" {
		v.Set("nextToken", q.NextToken)
	}
	return v
}

// ExpensePayload is the create/update body. Value is signed: negative for saida.
type ExpensePayload struct {
	Description string      `json:"description"`
	Value       json.Number `json:"value"`
	Category    string      `json:"category"`
	Date        time.Time   `json:"date"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewExpensePayload stamps date and updatedAt with now.
func NewExpensePayload(description, category string, amount decimal.Decimal, now time.Time) ExpensePayload {
	return ExpensePayload{
		Description: description,
		Value:       json.Number(amount.String()),
		Category:    category,
		Date:        now.UTC(),
		UpdatedAt:   now.UTC(),
	}
}

// ExpensePage is one page of the expense list.
type ExpensePage struct {
	Records   []ledger.RawRecord
	NextToken string
}

// ListExpenses fetches one page. Both bare arrays and {data, nextToken} bodies
// are accepted.
func (c *Client) ListExpenses(ctx context.Context, q ExpenseQuery) (ExpensePage, error) {
	raw, err := c.send(ctx, http.MethodGet, "/expense/myExpenseByFilter", nil, withQuery(q.Values()))
	if err != nil {
		return ExpensePage{}, err
	}
	records, err := ledger.DecodeList(raw)
	if err != nil {
		return ExpensePage{}, err
	}
	page := ExpensePage{Records: records}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		var meta struct {
			NextToken string `json:"nextToken"`
		}
		if json.Unmarshal(trimmed, &meta) == nil {
			page.NextToken = meta.NextToken
		}
	}
	return page, nil
}

// ListAllExpenses follows nextToken until the backend stops returning one.
func (c *Client) ListAllExpenses(ctx context.Context, q ExpenseQuery) ([]ledger.RawRecord, error) {
	var all []ledger.RawRecord
	seen := map[string]bool{}
	for {
		page, err := c.ListExpenses(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.NextToken == "" || seen[page.NextToken] {
			return all, nil
		}
		seen[page.NextToken] = true
		q.NextToken = page.NextToken
	}
}

// CreateExpense returns the id the backend assigned, or "" when the response
// did not carry one.
func (c *Client) CreateExpense(ctx context.Context, p ExpensePayload) (string, error) {
	raw, err := c.send(ctx, http.MethodPost, "/expense/create", p)
	if err != nil {
		return "", err
	}
	return ExtractID(raw), nil
}

func (c *Client) UpdateExpense(ctx context.Context, id string, p ExpensePayload) error {
	return c.sendJSON(ctx, http.MethodPatch, "/expense/update/"+pathEscape(id), p, nil)
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/expense/delete/"+pathEscape(id), nil, nil)
}

// AllValues returns the signed sum of the matching expenses.
func (c *Client) AllValues(ctx context.Context, q ExpenseQuery) (decimal.Decimal, error) {
	raw, err := c.send(ctx, http.MethodGet, "/operation/allValues", nil, withQuery(q.Values()))
	if err != nil {
		return decimal.Zero, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var d decimal.Decimal
		if err := d.UnmarshalJSON(trimmed); err != nil {
			return decimal.Zero, fmt.Errorf("failed to decode total: %w", err)
		}
		return d, nil
	}
	var body struct {
		Total decimal.Decimal `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode total: %w", err)
	}
	return body.Total, nil
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}
