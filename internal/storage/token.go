package storage

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the key the auth token is stored under in both stores.
const TokenKey = "token"

// TokenStore keeps the auth token in the persistent store when the user asked to
// be remembered and in the session store otherwise, never in both.
type TokenStore struct {
	local   Store
	session Store
}

// NewTokenStore builds a token store over a persistent and a session store.
func NewTokenStore(local, session Store) *TokenStore {
	return &TokenStore{local: local, session: session}
}

// Set clears both stores and writes token to one of them.
func (t *TokenStore) Set(token string, remember bool) error {
	if err := t.Clear(); err != nil {
		return err
	}
	if remember {
		return t.local.Set(TokenKey, token)
	}
	return t.session.Set(TokenKey, token)
}

// Get prefers the persistent store.
func (t *TokenStore) Get() (string, bool) {
	if v, ok := t.local.Get(TokenKey); ok && v != "" {
		return v, true
	}
	if v, ok := t.session.Get(TokenKey); ok && v != "" {
		return v, true
	}
	return "", false
}

func (t *TokenStore) Clear() error {
	if err := t.local.Remove(TokenKey); err != nil {
		return err
	}
	return t.session.Remove(TokenKey)
}

// IsAuthenticated reports whether a usable token is stored. Opaque tokens are
// trusted as is; JWTs are checked against their exp claim.
func (t *TokenStore) IsAuthenticated(now time.Time) bool {
	token, ok := t.Get()
	if !ok {
		return false
	}
	if len(strings.Split(token, ".")) != 3 {
		return true
	}
	return !IsJWTExpired(token, now)
}

// IsJWTExpired reads exp without verifying the signature. A token without exp
// never expires; a token that cannot be decoded counts as expired.
func IsJWTExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return now.Unix() >= exp.Unix()
}
