package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
	"github.com/planejamais/planeja_mais/internal/middleware"
)

// userHandler handles HTTP requests about the caller's own account.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers the authenticated part of the /login group.
func registerUserRoutes(login *gin.RouterGroup, jwtSecret string, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	account := login.Group("", middleware.AuthMiddleware(jwtSecret))
	{
		account.GET("/myAccount", h.myAccount)
		account.PATCH("/update", h.updateUser)
		account.DELETE("/delete", h.deleteUser)
	}
}

// myAccount godoc
// @Summary Get the caller's account
// @Tags login
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /login/myAccount [get]
func (h *userHandler) myAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update the caller's account
// @Description Changing the e-mail deactivates the account until the new address is confirmed.
// @Tags login
// @Accept  json
// @Produce  json
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Username or e-mail already in use"
// @Security BearerAuth
// @Router /login/update [patch]
func (h *userHandler) updateUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to update user")

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	logger.Info("User updated successfully", slog.Bool("is_active", updatedUser.IsActive))
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete the caller's account
// @Description Soft-deletes the user and removes every expense and goal.
// @Tags login
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /login/delete [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
