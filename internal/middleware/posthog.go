package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planejamais/planeja_mais/internal/utils"
)

// productEvents names the routes the product team follows. Other routes are
// reported under a name derived from the route template.
var productEvents = map[string]string{
	"POST /api/login/create":                 "account_created",
	"GET /api/login/autenticateAccountEmail": "account_confirmed",
	"PATCH /api/login/update":                "account_updated",
	"DELETE /api/login/delete":               "account_deleted",
	"POST /api/login/newPassword":            "password_reset",
	"POST /api/expense/create":               "expense_created",
	"PATCH /api/expense/update/:id":          "expense_updated",
	"DELETE /api/expense/delete/:id":         "expense_deleted",
	"GET /api/expense/myExpenseByFilter":     "expenses_listed",
	"GET /api/operation/allValues":           "total_requested",
	"POST /api/goal/create":                  "goal_created",
	"PATCH /api/goal/update/:id":             "goal_updated",
	"DELETE /api/goal/delete/:id":            "goal_deleted",
}

// untracked routes are never reported.
var untracked = map[string]bool{
	"/health":       true,
	"/swagger/*any": true,
}

// eventName maps a matched route to its analytics event, "" for unmatched routes.
func eventName(method, route string) string {
	if route == "" || untracked[route] {
		return ""
	}
	if name, ok := productEvents[method+" "+route]; ok {
		return name
	}
	name := strings.Trim(route, "/")
	name = strings.NewReplacer("/", "_", ":", "").Replace(name)
	return strings.ToLower(method + "_" + name)
}

// PosthogMiddleware reports every successful authenticated request. The user
// ID is read after the handler ran, so routes behind the auth middleware are
// attributed to their caller.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event := eventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if id := c.Param("id"); id != "" {
			props["resource_id"] = id
		}
		if year := c.Param("year"); year != "" {
			props["period"] = year + "-" + c.Param("month")
		}
		posthogClient.Enqueue(userID, event, props)
	}
}
