package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RegisterPayload is the account creation body. PasswordHash carries the plain
// password; the backend hashes it.
type RegisterPayload struct {
	Name         string    `json:"name"`
	User         string    `json:"user"`
	Email        string    `json:"email"`
	LastEmail    string    `json:"lastEmail"`
	Birthday     time.Time `json:"birthday"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	IsActive     bool      `json:"isActive"`
}

// NewRegisterPayload trims the form fields and turns a YYYY-MM-DD birthday into
// UTC midnight. A missing or malformed birthday becomes now.
func NewRegisterPayload(name, user, email, birthday, password string, now time.Time) RegisterPayload {
	email = strings.TrimSpace(email)
	return RegisterPayload{
		Name:         strings.TrimSpace(name),
		User:         strings.TrimSpace(user),
		Email:        email,
		LastEmail:    email,
		Birthday:     BirthdayUTC(birthday, now),
		PasswordHash: password,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
		IsActive:     false,
	}
}

// BirthdayUTC parses an HTML date input value.
func BirthdayUTC(yyyyMMdd string, now time.Time) time.Time {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(yyyyMMdd))
	if err != nil {
		return now.UTC()
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// LoginPayload is the credentials body.
type LoginPayload struct {
	User         string `json:"user"`
	PasswordHash string `json:"passwordHash"`
	Remember     bool   `json:"remember"`
}

// UpdatePayload carries the account fields that may be changed. Empty fields are
// left as they are.
type UpdatePayload struct {
	Name         string     `json:"name,omitempty"`
	User         string     `json:"user,omitempty"`
	Email        string     `json:"email,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	PasswordHash string     `json:"passwordHash,omitempty"`
}

// Account is the profile returned by myAccount.
type Account struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	User      string    `json:"user"`
	Email     string    `json:"email"`
	LastEmail string    `json:"lastEmail"`
	Birthday  time.Time `json:"birthday"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Client) CreateAccount(ctx context.Context, p RegisterPayload) error {
	return c.sendJSON(ctx, http.MethodPost, "/login/create", p, nil)
}

// Login returns the bearer token issued for the credentials.
func (c *Client) Login(ctx context.Context, p LoginPayload) (string, error) {
	raw, err := c.send(ctx, http.MethodPost, "/login/autentication", p)
	if err != nil {
		return "", err
	}
	return NormalizeToken(string(raw)), nil
}

// NormalizeToken strips quotes from a text token or unwraps {"token": "..."}.
func NormalizeToken(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var wrapped struct {
			Token string `json:"token"`
		}
		if json.Unmarshal([]byte(raw), &wrapped) == nil {
			raw = wrapped.Token
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
}

func (c *Client) MyAccount(ctx context.Context) (Account, error) {
	var acc Account
	err := c.sendJSON(ctx, http.MethodGet, "/login/myAccount", nil, &acc)
	return acc, err
}

func (c *Client) UpdateUser(ctx context.Context, p UpdatePayload) (Account, error) {
	var acc Account
	err := c.sendJSON(ctx, http.MethodPatch, "/login/update", p, &acc)
	return acc, err
}

func (c *Client) DeleteUser(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodDelete, "/login/delete", nil, nil)
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodGet, "/login/forgotPassword/"+pathEscape(email), nil, nil)
}

// NewPassword sets a new password using the token from the reset link.
func (c *Client) NewPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"passwordHash": password}
	return c.sendJSON(ctx, http.MethodPost, "/login/newPassword", body, nil, withBearer(resetToken))
}

// SendAuthEmail hits the confirmation endpoint with value as bearer. A
// confirmation token activates the account and yields an access token.
func (c *Client) SendAuthEmail(ctx context.Context, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", errEmptyToken
	}
	raw, err := c.send(ctx, http.MethodGet, "/login/autenticateAccountEmail", nil, withBearer(value))
	if err != nil {
		return "", err
	}
	return NormalizeToken(string(raw)), nil
}

// ResendConfirmation asks for a new confirmation mail for user. The name goes
// in the query so the backend never mistakes it for a token.
func (c *Client) ResendConfirmation(ctx context.Context, user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return errEmptyToken
	}
	_, err := c.send(ctx, http.MethodGet, "/login/autenticateAccountEmail", nil, withQuery(url.Values{"user": {user}}))
	return err
}

// LoginWithGoogle exchanges a Google ID token for an access token.
func (c *Client) LoginWithGoogle(ctx context.Context, idToken string) (string, error) {
	raw, err := c.send(ctx, http.MethodPost, "/login/google", map[string]string{"idToken": idToken})
	if err != nil {
		return "", err
	}
	return NormalizeToken(string(raw)), nil
}
