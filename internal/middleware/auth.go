package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/planejamais/planeja_mais/internal/utils"
)

const rawTokenKey = contextKey("rawToken")

// AuthMiddleware creates a Gin middleware handler that validates session JWTs.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return RequireToken(jwtSecret, utils.PurposeAccess)
}

// RequireToken validates a bearer JWT minted for the given purpose and stores the
// subject as the authenticated user.
func RequireToken(jwtSecret string, purpose utils.TokenPurpose) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := BearerToken(c)
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret, purpose)
		if err != nil {
			logger.Warn("Invalid token", slog.String("purpose", string(purpose)), slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		enrichedLogger := logger.With(slog.String("user_id", userID))

		ctx := WithUserID(c.Request.Context(), userID)
		ctx = context.WithValue(ctx, rawTokenKey, tokenString)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

// GetRawTokenFromContext returns the bearer token accepted by RequireToken.
func GetRawTokenFromContext(c *gin.Context) string {
	token, _ := c.Request.Context().Value(rawTokenKey).(string)
	return token
}

// BearerToken extracts the token of an "Authorization: Bearer ..." header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
