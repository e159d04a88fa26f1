package dto

import (
	"time"

	"github.com/planejamais/planeja_mais/internal/core/domain"
)

// UserResponse is the account view returned by /login/myAccount.
type UserResponse struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	User      string     `json:"user"`
	Email     string     `json:"email"`
	LastEmail string     `json:"lastEmail,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		User:      user.Username,
		Email:     user.Email,
		LastEmail: user.LastEmail,
		Birthday:  user.Birthday,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.LastUpdatedAt,
	}
}
