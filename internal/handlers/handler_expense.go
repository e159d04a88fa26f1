package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
)

type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expense")
	{
		expenses.GET("/myExpenseByFilter", h.listExpenses)
		expenses.POST("/create", h.createExpense)
		expenses.PATCH("/update/:id", h.updateExpense)
		expenses.DELETE("/delete/:id", h.deleteExpense)
	}
}

// bindExpenseQuery parses the filter query shared by listing and totals.
func bindExpenseQuery(c *gin.Context) (dto.ListExpensesQuery, bool) {
	var q dto.ListExpensesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return q, false
	}
	return q, true
}

// listExpenses godoc
// @Summary List the caller's expenses
// @Description Newest first, keyset paginated. Pass nextToken from the previous page to continue.
// @Tags expense
// @Produce json
// @Param startDate query string false "RFC 3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC 3339 or YYYY-MM-DD (whole day)"
// @Param category query string false "Substring, case-insensitive"
// @Param description query string false "Substring, case-insensitive"
// @Param minValue query number false "Minimum magnitude"
// @Param maxValue query number false "Maximum magnitude"
// @Param type query string false "entrada or saida" Enums(entrada, saida)
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense/myExpenseByFilter [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
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

	page, err := h.expenseService.ListExpenses(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(page))
}

// createExpense godoc
// @Summary Create an expense
// @Description Negative values are outflows (saida), positive ones inflows (entrada).
// @Tags expense
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense/create [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(*expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Tags expense
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense/update/{id} [patch]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(*expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expense
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expense/delete/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}
