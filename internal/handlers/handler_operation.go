package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
)

// operationHandler serves aggregate figures over the caller's expenses.
type operationHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func registerOperationRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := &operationHandler{expenseService: expenseService}

	operations := rg.Group("/operation")
	operations.GET("/allValues", h.allValues)
}

// allValues godoc
// @Summary Sum of expenses
// @Description Signed sum of every expense matching the filter. Paging parameters are ignored.
// @Tags operation
// @Produce json
// @Param startDate query string false "RFC 3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC 3339 or YYYY-MM-DD (whole day)"
// @Param category query string false "Substring, case-insensitive"
// @Param type query string false "entrada or saida" Enums(entrada, saida)
// @Success 200 {object} dto.TotalResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /operation/allValues [get]
func (h *operationHandler) allValues(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	q, ok := bindExpenseQuery(c)
	if !ok {
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		bindError(c, err)
		return
	}
	filter.Limit, filter.NextToken = 0, ""

	total, err := h.expenseService.TotalValue(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to sum expenses")
		return
	}
	c.JSON(http.StatusOK, dto.TotalResponse{Total: total})
}
