package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
)

type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

func newGoalHandler(gs portssvc.GoalSvcFacade) *goalHandler {
	return &goalHandler{goalService: gs}
}

func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goal")
	{
		goals.POST("/create", h.createGoal)
		goals.GET("/myGoal/:year/:month", h.getGoal)
		goals.GET("/myGoals", h.listGoals)
		goals.PATCH("/update/:id", h.updateGoal)
		goals.DELETE("/delete/:id", h.deleteGoal)
	}
}

func periodLabel(year, month int) string {
	if month == 0 {
		return fmt.Sprintf("o ano %d", year)
	}
	return fmt.Sprintf("%02d/%d", month, year)
}

// createGoal godoc
// @Summary Create a goal
// @Description One goal per (year, month); month 0 is the annual goal.
// @Tags goal
// @Accept json
// @Produce json
// @Param goal body dto.CreateGoalRequest true "Goal"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A goal already exists for the period"
// @Security BearerAuth
// @Router /goal/create [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && req.Month != nil {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Já existe uma meta para " + periodLabel(req.Year, *req.Month) + "."})
			return
		}
		respondError(c, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGoalResponse(*goal))
}

// getGoal godoc
// @Summary Get the goal of a period
// @Tags goal
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month, 0 for the annual goal"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /goal/myGoal/{year}/{month} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Período inválido."})
		return
	}

	goal, err := h.goalService.GetGoalByPeriod(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, err, "Failed to get goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(*goal))
}

// listGoals godoc
// @Summary List the caller's goals
// @Tags goal
// @Produce json
// @Success 200 {array} dto.GoalResponse
// @Security BearerAuth
// @Router /goal/myGoals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponses(goals))
}

// updateGoal godoc
// @Summary Update a goal
// @Tags goal
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param goal body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /goal/update/{id} [patch]
func (h *goalHandler) updateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(*goal))
}

// deleteGoal godoc
// @Summary Delete a goal
// @Tags goal
// @Param id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /goal/delete/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}
