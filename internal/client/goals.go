package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/shopspring/decimal"
)

// GoalPayload is the create/update body. Titles never go to the backend.
type GoalPayload struct {
	Month     int         `json:"month"`
	Year      int         `json:"year"`
	Goal      json.Number `json:"goal"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewGoalPayload builds the body for g.
func NewGoalPayload(g ledger.Goal) GoalPayload {
	return GoalPayload{
		Month:     g.Month,
		Year:      g.Year,
		Goal:      json.Number(g.Target.String()),
		UpdatedAt: g.UpdatedAt.UTC(),
	}
}

type rawGoal struct {
	UnderscoreID string           `json:"_id"`
	ID           string           `json:"id"`
	Month        *int             `json:"month"`
	Year         *int             `json:"year"`
	Goal         *decimal.Decimal `json:"goal"`
	UpdatedAt    *time.Time       `json:"updatedAt"`
}

// toGoal fills what the response left out from fallback.
func (r rawGoal) toGoal(fallback ledger.Goal) ledger.Goal {
	g := fallback
	if r.UnderscoreID != "" {
		g.ID = r.UnderscoreID
	} else if r.ID != "" {
		g.ID = r.ID
	}
	if r.Month != nil {
		g.Month = *r.Month
	}
	if r.Year != nil {
		g.Year = *r.Year
	}
	if r.Goal != nil {
		g.Target = *r.Goal
	}
	if r.UpdatedAt != nil {
		g.UpdatedAt = *r.UpdatedAt
	}
	return g
}

// decodeGoal accepts {data: {...}}, {goal: {...}} or the bare object.
func decodeGoal(body []byte, fallback ledger.Goal) ledger.Goal {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return fallback
	}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
		Goal json.RawMessage `json:"goal"`
	}
	if json.Unmarshal(body, &wrapped) == nil {
		for _, inner := range []json.RawMessage{wrapped.Data, wrapped.Goal} {
			if t := bytes.TrimSpace(inner); len(t) > 0 && t[0] == '{' {
				body = t
				break
			}
		}
	}
	var r rawGoal
	if err := json.Unmarshal(body, &r); err != nil {
		return fallback
	}
	return r.toGoal(fallback)
}

// CreateGoal submits g. A duplicate period comes back as a 409 *APIError.
func (c *Client) CreateGoal(ctx context.Context, g ledger.Goal) (ledger.Goal, error) {
	raw, err := c.send(ctx, http.MethodPost, "/goal/create", NewGoalPayload(g))
	if err != nil {
		return ledger.Goal{}, err
	}
	return decodeGoal(raw, g), nil
}

func (c *Client) GetGoal(ctx context.Context, year, month int) (ledger.Goal, error) {
	path := "/goal/myGoal/" + strconv.Itoa(year) + "/" + strconv.Itoa(month)
	raw, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return ledger.Goal{}, err
	}
	return decodeGoal(raw, ledger.Goal{Year: year, Month: month}), nil
}

// ListGoals returns every goal of the logged user.
func (c *Client) ListGoals(ctx context.Context) ([]ledger.Goal, error) {
	raw, err := c.send(ctx, http.MethodGet, "/goal/myGoals", nil)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	var items []rawGoal
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped struct {
			Data []rawGoal `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode goals: %w", err)
		}
		items = wrapped.Data
	} else if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode goals: %w", err)
		}
	}
	goals := make([]ledger.Goal, 0, len(items))
	for _, it := range items {
		goals = append(goals, it.toGoal(ledger.Goal{}))
	}
	return goals, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, g ledger.Goal) (ledger.Goal, error) {
	raw, err := c.send(ctx, http.MethodPatch, "/goal/update/"+pathEscape(id), NewGoalPayload(g))
	if err != nil {
		return ledger.Goal{}, err
	}
	g.ID = id
	return decodeGoal(raw, g), nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/goal/delete/"+pathEscape(id), nil, nil)
}
