package dto

import (
	"time"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest is the body of /goal/create. Month 0 makes the goal annual.
type CreateGoalRequest struct {
	Month *int             `json:"month" binding:"required,min=0,max=12"`
	Year  int              `json:"year" binding:"required,min=2000,max=2100"`
	Goal  *decimal.Decimal `json:"goal" binding:"required"`
}

// UpdateGoalRequest is the PATCH body; omitted fields are kept.
type UpdateGoalRequest struct {
	Month *int             `json:"month" binding:"omitempty,min=0,max=12"`
	Year  *int             `json:"year" binding:"omitempty,min=2000,max=2100"`
	Goal  *decimal.Decimal `json:"goal"`
}

type GoalResponse struct {
	ID        string          `json:"_id"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Goal      decimal.Decimal `json:"goal"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func ToGoalResponse(g domain.Goal) GoalResponse {
	return GoalResponse{
		ID:        g.GoalID,
		Month:     g.Month,
		Year:      g.Year,
		Goal:      g.Target,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.LastUpdatedAt,
	}
}

func ToGoalResponses(goals []domain.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, ToGoalResponse(g))
	}
	return out
}
