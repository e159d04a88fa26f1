package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventName(t *testing.T) {
	tests := []struct {
		method, route, want string
	}{
		{http.MethodPost, "/api/expense/create", "expense_created"},
		{http.MethodDelete, "/api/goal/delete/:id", "goal_deleted"},
		{http.MethodGet, "/api/goal/myGoal/:year/:month", "get_api_goal_mygoal_year_month"},
		{http.MethodPatch, "/api/login/autenticateAccountEmail", "patch_api_login_autenticateaccountemail"},
		{http.MethodGet, "/health", ""},
		{http.MethodGet, "/swagger/*any", ""},
		{http.MethodGet, "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, eventName(tt.method, tt.route), tt.route)
	}
}
