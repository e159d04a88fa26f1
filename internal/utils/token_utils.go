package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPurpose tells apart the JWTs the service issues. A confirmation or reset
// token must never be usable as a session.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "access"
	PurposeConfirm TokenPurpose = "confirm"
	PurposeReset   TokenPurpose = "reset"
)

// ErrWrongTokenPurpose is returned when a valid token is presented to the wrong endpoint.
var ErrWrongTokenPurpose = errors.New("token purpose mismatch")

// TokenClaims are the registered claims plus the token purpose.
type TokenClaims struct {
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// IsJWT reports whether s decodes as a compact JWT, without checking its
// signature or claims. A user name such as "joao.da.silva" is not one.
func IsJWT(s string) bool {
	if strings.Count(s, ".") != 2 {
		return false
	}
	_, _, err := jwt.NewParser().ParseUnverified(s, jwt.MapClaims{})
	return err == nil
}

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID string, purpose TokenPurpose, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature, standard claims
// and purpose. It returns the claims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string, purpose TokenPurpose) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	// Tokens minted before purposes existed carry none and are treated as access tokens.
	got := claims.Purpose
	if got == "" {
		got = PurposeAccess
	}
	if got != purpose {
		return nil, ErrWrongTokenPurpose
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
