package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planejamais/planeja_mais/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func newAuthRouter(purpose utils.TokenPurpose) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireToken(testSecret, purpose), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID+"|"+GetRawTokenFromContext(c))
	})
	return r
}

func TestRequireToken(t *testing.T) {
	access, err := utils.GenerateJWT("u1", utils.PurposeAccess, testSecret, time.Hour, "test")
	require.NoError(t, err)
	reset, err := utils.GenerateJWT("u1", utils.PurposeReset, testSecret, time.Hour, "test")
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("u1", utils.PurposeAccess, testSecret, -time.Minute, "test")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid", header: "Bearer " + access, wantCode: http.StatusOK, wantBody: "u1|" + access},
		{name: "scheme is case-insensitive", header: "bearer " + access, wantCode: http.StatusOK, wantBody: "u1|" + access},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + access, wantCode: http.StatusUnauthorized},
		{name: "wrong purpose", header: "Bearer " + reset, wantCode: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantCode: http.StatusUnauthorized, wantBody: `{"error":"Token has expired"}`},
		{name: "garbage", header: "Bearer abc.def.ghi", wantCode: http.StatusUnauthorized},
	}

	r := newAuthRouter(utils.PurposeAccess)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := BearerToken(c)
	assert.False(t, ok)

	c.Request.Header.Set("Authorization", "Bearer  ana ")
	token, ok := BearerToken(c)
	assert.True(t, ok)
	assert.Equal(t, "ana", token)

	c.Request.Header.Set("Authorization", "Bearer a b")
	_, ok = BearerToken(c)
	assert.False(t, ok)
}
