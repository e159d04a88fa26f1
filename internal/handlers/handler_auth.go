package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
	"github.com/planejamais/planeja_mais/internal/middleware"
	"github.com/planejamais/planeja_mais/internal/utils"
)

// authHandler serves the public login, confirmation and password recovery routes.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
	jwtSecret   string
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade, jwtSecret string) *authHandler {
	return &authHandler{
		authService: as,
		userService: us,
		jwtSecret:   jwtSecret,
	}
}

// registerAuthRoutes sets up the public part of the /login group.
func registerAuthRoutes(login *gin.RouterGroup, jwtSecret string, services *portssvc.ServiceContainer, loginLimit gin.HandlerFunc) {
	h := newAuthHandler(services.Auth, services.User, jwtSecret)

	login.POST("/create", h.register)
	login.POST("/autentication", loginLimit, h.login)
	login.POST("/google", loginLimit, h.loginWithGoogle)
	login.GET("/forgotPassword/:email", loginLimit, h.forgotPassword)
	login.POST("/newPassword", middleware.RequireToken(jwtSecret, utils.PurposeReset), h.newPassword)
	login.GET("/autenticateAccountEmail", h.authenticateAccountEmail)
}

// register godoc
// @Summary Register new user
// @Description Creates an inactive account and mails the confirmation link.
// @Tags login
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or e-mail already in use"
// @Failure 500 {object} ErrorResponse
// @Router /login/create [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Usuário ou e-mail já cadastrado."})
			return
		}
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// login godoc
// @Summary User login
// @Description Authenticates by username or e-mail and returns the access token as plain text.
// @Tags login
// @Accept json
// @Produce plain
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {string} string "JWT"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account not activated"
// @Failure 429 {object} ErrorResponse
// @Router /login/autentication [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.User, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate")
		return
	}
	c.String(http.StatusOK, token)
}

// loginWithGoogle godoc
// @Summary Google login
// @Description Exchanges a Google ID token for an access token, creating the account on first use.
// @Tags login
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google login not configured"
// @Router /login/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.authService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não foi possível validar o login com Google."})
			return
		}
		respondError(c, err, "Failed to login with Google")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

// forgotPassword godoc
// @Summary Request password reset
// @Description Mails a single-use reset link. Unknown addresses get the same answer.
// @Tags login
// @Produce json
// @Param email path string true "Account e-mail"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /login/forgotPassword/{email} [get]
func (h *authHandler) forgotPassword(c *gin.Context) {
	if err := h.authService.RequestPasswordReset(c.Request.Context(), c.Param("email")); err != nil {
		respondError(c, err, "Failed to request password reset")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Se o e-mail estiver cadastrado, enviaremos um link de redefinição."})
}

// newPassword godoc
// @Summary Set a new password
// @Description Redeems the reset token sent as bearer.
// @Tags login
// @Accept json
// @Produce json
// @Param body body dto.NewPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /login/newPassword [post]
func (h *authHandler) newPassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), userID, middleware.GetRawTokenFromContext(c), req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Link de redefinição inválido ou já utilizado."})
			return
		}
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Senha alterada com sucesso."})
}

// authenticateAccountEmail godoc
// @Summary Confirm account or resend confirmation
// @Description With a confirmation token as bearer, activates the account and returns an access token
// @Description as plain text. With a username or e-mail (bearer or ?user=), resends the confirmation mail.
// @Tags login
// @Produce plain
// @Param user query string false "Username or e-mail to resend the confirmation to"
// @Success 200 {string} string "JWT"
// @Success 202 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /login/autenticateAccountEmail [get]
func (h *authHandler) authenticateAccountEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	value, _ := middleware.BearerToken(c)
	login := strings.TrimSpace(c.Query("user"))

	if login == "" && utils.IsJWT(value) {
		claims, err := utils.ParseAndValidateJWT(value, h.jwtSecret, utils.PurposeConfirm)
		if err != nil {
			logger.Warn("Confirmation token rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Link de confirmação inválido ou expirado."})
			return
		}
		token, err := h.authService.ConfirmAccount(c.Request.Context(), claims.Subject)
		if err != nil {
			respondError(c, err, "Failed to confirm account")
			return
		}
		c.String(http.StatusOK, token)
		return
	}

	if login == "" {
		login = value
	}
	if login == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Informe o usuário ou o token de confirmação."})
		return
	}
	if err := h.authService.ResendConfirmation(c.Request.Context(), login); err != nil {
		respondError(c, err, "Failed to resend confirmation")
		return
	}
	c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Se a conta existir e não estiver ativa, um novo e-mail de confirmação foi enviado."})
}
