package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	portssvc "github.com/planejamais/planeja_mais/internal/core/ports/services"
	"github.com/planejamais/planeja_mais/internal/dto"
	"github.com/planejamais/planeja_mais/internal/handlers"
	"github.com/planejamais/planeja_mais/internal/middleware"
	"github.com/planejamais/planeja_mais/internal/platform/config"
	"github.com/planejamais/planeja_mais/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	userSvc     *MockUserService
	authSvc     *MockAuthService
	expenseSvc  *MockExpenseService
	goalSvc     *MockGoalService
	accessToken string
}

func (suite *HandlersTestSuite) token(userID string, purpose utils.TokenPurpose) string {
	token, err := utils.GenerateJWT(userID, purpose, suite.cfg.JWTSecret, time.Hour, "planeja-test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:      "test-secret-key-that-is-long-enough",
		LoginRateLimit: "5-M",
		IsProduction:   true,
	}
	suite.userSvc = new(MockUserService)
	suite.authSvc = new(MockAuthService)
	suite.expenseSvc = new(MockExpenseService)
	suite.goalSvc = new(MockGoalService)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	container := &portssvc.ServiceContainer{
		User:    suite.userSvc,
		Auth:    suite.authSvc,
		Expense: suite.expenseSvc,
		Goal:    suite.goalSvc,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, suite.cfg, container, nil))
	suite.accessToken = suite.token("u1", utils.PurposeAccess)
}

func (suite *HandlersTestSuite) do(method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_ReturnsPlainToken() {
	suite.authSvc.On("Login", mock.Anything, "ana", "s3nha-forte").Return("jwt-token", nil).Once()

	w := suite.do(http.MethodPost, "/api/login/autentication", map[string]any{"user": "ana", "passwordHash": "s3nha-forte"}, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("jwt-token", w.Body.String())
	suite.Contains(w.Header().Get("Content-Type"), "text/plain")
}

func (suite *HandlersTestSuite) TestLogin_InactiveAccountIsConflict() {
	suite.authSvc.On("Login", mock.Anything, "ana", "s3nha-forte").Return("", apperrors.ErrInactiveAccount).Once()

	w := suite.do(http.MethodPost, "/api/login/autentication", map[string]any{"user": "ana", "passwordHash": "s3nha-forte"}, "")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_BadCredentials() {
	suite.authSvc.On("Login", mock.Anything, "ana", "errada").Return("", apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/login/autentication", map[string]any{"user": "ana", "passwordHash": "errada"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_RateLimited() {
	suite.authSvc.On("Login", mock.Anything, "ana", "errada").Return("", apperrors.ErrUnauthorized)

	body := map[string]any{"user": "ana", "passwordHash": "errada"}
	for i := 0; i < 5; i++ {
		suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/login/autentication", body, "").Code)
	}
	w := suite.do(http.MethodPost, "/api/login/autentication", body, "")
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.authSvc.AssertNumberOfCalls(suite.T(), "Login", 5)
}

func (suite *HandlersTestSuite) TestRegister_Duplicate() {
	suite.userSvc.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest")).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/login/create", map[string]any{
		"name": "Ana", "user": "ana", "email": "ana@example.com", "passwordHash": "s3nha-forte",
	}, "")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestRegister_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/login/create", map[string]any{"name": "Ana", "user": "an", "email": "nope"}, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.userSvc.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestMyAccount() {
	user := &domain.User{UserID: "u1", Name: "Ana", Username: "ana", Email: "ana@example.com", IsActive: true}
	suite.userSvc.On("GetUserByID", mock.Anything, "u1").Return(user, nil).Once()

	w := suite.do(http.MethodGet, "/api/login/myAccount", nil, suite.accessToken)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("u1", resp.ID)
	suite.Equal("ana", resp.User)
	suite.NotContains(w.Body.String(), "passwordHash")
}

func (suite *HandlersTestSuite) TestMyAccount_MissingToken() {
	w := suite.do(http.MethodGet, "/api/login/myAccount", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteAccount() {
	suite.userSvc.On("DeleteUser", mock.Anything, "u1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/login/delete", nil, suite.accessToken)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestForgotPassword() {
	suite.authSvc.On("RequestPasswordReset", mock.Anything, "ana@example.com").Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/login/forgotPassword/ana@example.com", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.authSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestNewPassword_RequiresResetToken() {
	resetToken := suite.token("u1", utils.PurposeReset)
	suite.authSvc.On("ResetPassword", mock.Anything, "u1", resetToken, "nova-senha").Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/login/newPassword", map[string]any{"passwordHash": "nova-senha"}, resetToken)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/login/newPassword", map[string]any{"passwordHash": "nova-senha"}, suite.accessToken)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.authSvc.AssertNumberOfCalls(suite.T(), "ResetPassword", 1)
}

func (suite *HandlersTestSuite) TestNewPassword_TokenAlreadyUsed() {
	resetToken := suite.token("u1", utils.PurposeReset)
	suite.authSvc.On("ResetPassword", mock.Anything, "u1", resetToken, "nova-senha").Return(apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/login/newPassword", map[string]any{"passwordHash": "nova-senha"}, resetToken)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestAuthenticateAccountEmail_ConfirmToken() {
	suite.authSvc.On("ConfirmAccount", mock.Anything, "u1").Return("session-token", nil).Once()

	w := suite.do(http.MethodGet, "/api/login/autenticateAccountEmail", nil, suite.token("u1", utils.PurposeConfirm))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("session-token", w.Body.String())
}

func (suite *HandlersTestSuite) TestAuthenticateAccountEmail_RejectsOtherTokens() {
	w := suite.do(http.MethodGet, "/api/login/autenticateAccountEmail", nil, suite.accessToken)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.authSvc.AssertNotCalled(suite.T(), "ConfirmAccount", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAuthenticateAccountEmail_ResendByUsername() {
	suite.authSvc.On("ResendConfirmation", mock.Anything, "ana").Return(nil).Twice()

	suite.Equal(http.StatusAccepted, suite.do(http.MethodGet, "/api/login/autenticateAccountEmail", nil, "ana").Code)
	suite.Equal(http.StatusAccepted, suite.do(http.MethodGet, "/api/login/autenticateAccountEmail?user=ana", nil, "").Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/login/autenticateAccountEmail", nil, "").Code)
}

func (suite *HandlersTestSuite) TestAuthenticateAccountEmail_DottedUsernameIsNotAToken() {
	suite.authSvc.On("ResendConfirmation", mock.Anything, "joao.da.silva").Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/login/autenticateAccountEmail", nil, "joao.da.silva")

	suite.Equal(http.StatusAccepted, w.Code)
	suite.authSvc.AssertNotCalled(suite.T(), "ConfirmAccount", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAuthenticateAccountEmail_UserQueryWinsOverBearer() {
	suite.authSvc.On("ResendConfirmation", mock.Anything, "ana").Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/login/autenticateAccountEmail?user=ana", nil, suite.accessToken)

	suite.Equal(http.StatusAccepted, w.Code)
}

func (suite *HandlersTestSuite) TestGoogleLogin() {
	suite.authSvc.On("LoginWithGoogle", mock.Anything, "google-id-token").Return("session-token", nil).Once()

	w := suite.do(http.MethodPost, "/api/login/google", map[string]any{"idToken": "google-id-token"}, "")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("session-token", resp.Token)
}

func (suite *HandlersTestSuite) TestListExpenses_MissingToken() {
	w := suite.do(http.MethodGet, "/api/expense/myExpenseByFilter", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.expenseSvc.AssertNotCalled(suite.T(), "ListExpenses", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestListExpenses_Filter() {
	page := &domain.ExpensePage{
		Expenses: []domain.Expense{{
			ExpenseID: "e1", Description: "Mercado", Category: "Alimentação",
			Value: decimal.NewFromInt(-230), Date: time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
		}},
		NextToken: "next",
	}
	suite.expenseSvc.On("ListExpenses", mock.Anything, "u1", mock.MatchedBy(func(f domain.ExpenseFilter) bool {
		return f.Category == "Mercado" && f.Type == domain.ExpenseTypeOutflow && f.Limit == 10 &&
			f.MinValue != nil && f.MinValue.Equal(decimal.NewFromInt(100)) &&
			f.EndDate != nil && f.EndDate.Hour() == 23
	})).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/expense/myExpenseByFilter?category=Mercado&type=saida&limit=10&minValue=-100&endDate=2026-03-31", nil, suite.accessToken)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp struct {
		Data []struct {
			ID   string `json:"_id"`
			Type string `json:"type"`
		} `json:"data"`
		NextToken string `json:"nextToken"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Data, 1)
	suite.Equal("e1", resp.Data[0].ID)
	suite.Equal("saida", resp.Data[0].Type)
	suite.Equal("next", resp.NextToken)
}

func (suite *HandlersTestSuite) TestListExpenses_InvalidQuery() {
	tests := []string{
		"type=ambos",
		"startDate=ontem",
		"startDate=2026-03-10&endDate=2026-03-01",
		"minValue=500&maxValue=10",
		"limit=9999",
	}
	for _, query := range tests {
		w := suite.do(http.MethodGet, "/api/expense/myExpenseByFilter?"+query, nil, suite.accessToken)
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
}

func (suite *HandlersTestSuite) TestCreateExpense_ZeroValue() {
	appErr := apperrors.NewAppError(http.StatusBadRequest, "O valor deve ser diferente de zero.", apperrors.ErrValidation)
	suite.expenseSvc.On("CreateExpense", mock.Anything, "u1", mock.AnythingOfType("dto.CreateExpenseRequest")).Return(nil, appErr).Once()

	w := suite.do(http.MethodPost, "/api/expense/create", map[string]any{"description": "x", "value": 0}, suite.accessToken)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("O valor deve ser diferente de zero.", suite.errorMessage(w))
}

func (suite *HandlersTestSuite) TestCreateExpense() {
	created := &domain.Expense{ExpenseID: "e1", UserID: "u1", Description: "Salário", Category: "Salário", Value: decimal.NewFromInt(4000)}
	suite.expenseSvc.On("CreateExpense", mock.Anything, "u1", mock.MatchedBy(func(req dto.CreateExpenseRequest) bool {
		return req.Value != nil && req.Value.Equal(decimal.NewFromInt(4000))
	})).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/expense/create", map[string]any{"description": "Salário", "value": 4000}, suite.accessToken)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"type":"entrada"`)
}

func (suite *HandlersTestSuite) TestUpdateAndDeleteExpense_NotFound() {
	suite.expenseSvc.On("UpdateExpense", mock.Anything, "u1", "e404", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.expenseSvc.On("DeleteExpense", mock.Anything, "u1", "e404").Return(apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusNotFound, suite.do(http.MethodPatch, "/api/expense/update/e404", map[string]any{"value": 1}, suite.accessToken).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/expense/delete/e404", nil, suite.accessToken).Code)
}

func (suite *HandlersTestSuite) TestAllValues() {
	suite.expenseSvc.On("TotalValue", mock.Anything, "u1", mock.MatchedBy(func(f domain.ExpenseFilter) bool {
		return f.Category == "Mercado" && f.Limit == 0 && f.NextToken == ""
	})).Return(decimal.RequireFromString("-330.5"), nil).Once()

	w := suite.do(http.MethodGet, "/api/operation/allValues?category=Mercado&nextToken=abc", nil, suite.accessToken)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp struct {
		Total json.RawMessage `json:"total"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("-330.5", strings.Trim(string(resp.Total), `"`))
}

func (suite *HandlersTestSuite) TestCreateGoal_DuplicateIsConflict() {
	suite.goalSvc.On("CreateGoal", mock.Anything, "u1", mock.AnythingOfType("dto.CreateGoalRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/goal/create", map[string]any{"month": 3, "year": 2026, "goal": 1500}, suite.accessToken)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Já existe uma meta para 03/2026.", suite.errorMessage(w))
}

func (suite *HandlersTestSuite) TestCreateGoal_AnnualDuplicateMessage() {
	suite.goalSvc.On("CreateGoal", mock.Anything, "u1", mock.AnythingOfType("dto.CreateGoalRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/goal/create", map[string]any{"month": 0, "year": 2026, "goal": 12000}, suite.accessToken)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Já existe uma meta para o ano 2026.", suite.errorMessage(w))
}

func (suite *HandlersTestSuite) TestCreateGoal_Validation() {
	w := suite.do(http.MethodPost, "/api/goal/create", map[string]any{"month": 13, "year": 2026, "goal": 10}, suite.accessToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/goal/create", map[string]any{"year": 2026, "goal": 10}, suite.accessToken)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.goalSvc.AssertNotCalled(suite.T(), "CreateGoal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGetGoalByPeriod() {
	goal := &domain.Goal{GoalID: "g1", UserID: "u1", Year: 2026, Month: 3, Target: decimal.NewFromInt(1500)}
	suite.goalSvc.On("GetGoalByPeriod", mock.Anything, "u1", 2026, 3).Return(goal, nil).Once()
	suite.goalSvc.On("GetGoalByPeriod", mock.Anything, "u1", 2026, 4).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/goal/myGoal/2026/3", nil, suite.accessToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"_id":"g1"`)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/goal/myGoal/2026/4", nil, suite.accessToken).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/goal/myGoal/abc/4", nil, suite.accessToken).Code)
}

func (suite *HandlersTestSuite) TestListGoals() {
	suite.goalSvc.On("ListGoals", mock.Anything, "u1").Return([]domain.Goal{{GoalID: "g1"}, {GoalID: "g2"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/goal/myGoals", nil, suite.accessToken)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.GoalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
