package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// User facing messages of the auth screens.
const (
	MsgInactiveAccount   = "Sua conta ainda não foi ativada. Verifique sua caixa de entrada (e o spam) para confirmar o e-mail."
	MsgInvalidLogin      = "Usuário ou senha inválidos."
	MsgNoConnection      = "Sem conexão com o servidor. Verifique sua internet."
	MsgUnexpected        = "Ocorreu um erro inesperado. Tente novamente."
	MsgAuthFailed        = "Falha ao autenticar. Tente novamente."
	MsgAccountCreated    = "Conta criada! Verifique seu e-mail para ativar."
	MsgEmptyEmail        = "Informe um e-mail válido."
	MsgResetSent         = "Link de recuperação enviado com sucesso."
	MsgResetFailed       = "Falha ao enviar o link. Tente novamente."
	MsgInvalidToken      = "Token inválido."
	MsgFillAllFields     = "Preencha todos os campos."
	MsgPasswordsMismatch = "As senhas não conferem."
	MsgPasswordUpdated   = "Senha atualizada com sucesso."
	MsgPasswordFailed    = "Erro ao atualizar a senha."
	MsgConfirmFailed     = "Erro ao confirmar sua conta. Tente novamente."
)

// TokenSaver persists a token. storage.TokenStore satisfies it.
type TokenSaver interface {
	Set(token string, remember bool) error
}

// Auth runs the login, registration and password screens against the API.
type Auth struct {
	api    *Client
	tokens TokenSaver
}

func NewAuth(api *Client, tokens TokenSaver) *Auth {
	return &Auth{api: api, tokens: tokens}
}

// LoginMessage maps a failed login to the text shown under the form.
func LoginMessage(err error) string {
	switch StatusOf(err) {
	case http.StatusConflict:
		return MsgInactiveAccount
	case http.StatusBadRequest, http.StatusUnauthorized:
		return MsgInvalidLogin
	case 0:
		return MsgNoConnection
	}
	return MsgUnexpected
}

// Login authenticates and stores the token. An inactive account triggers a new
// confirmation mail; the outcome of that resend does not change the message.
func (a *Auth) Login(ctx context.Context, user, password string, remember bool) error {
	token, err := a.api.Login(ctx, LoginPayload{User: user, PasswordHash: password, Remember: remember})
	if err != nil {
		if IsConflict(err) {
			if resendErr := a.api.ResendConfirmation(ctx, user); resendErr != nil {
				a.api.logger.Warn("Failed to resend confirmation email", "user", user, "error", resendErr)
			}
		}
		return &UserError{Message: LoginMessage(err), Err: err}
	}
	if token == "" {
		return &UserError{Message: MsgAuthFailed, Err: errEmptyToken}
	}
	if err := a.tokens.Set(token, remember); err != nil {
		return &UserError{Message: MsgUnexpected, Err: err}
	}
	return nil
}

// Register creates an inactive account and returns the success message.
func (a *Auth) Register(ctx context.Context, p RegisterPayload) (string, error) {
	if err := a.api.CreateAccount(ctx, p); err != nil {
		return "", &UserError{Message: messageOr(err, MsgUnexpected), Err: err}
	}
	return MsgAccountCreated, nil
}

// ForgotPassword validates the e-mail before calling the API.
func (a *Auth) ForgotPassword(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", &UserError{Message: MsgEmptyEmail}
	}
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		return "", &UserError{Message: messageOr(err, MsgResetFailed), Err: err}
	}
	return MsgResetSent, nil
}

// ChangePassword applies the reset token from the mailed link.
func (a *Auth) ChangePassword(ctx context.Context, resetToken, password, confirm string) (string, error) {
	if resetToken == "" {
		return "", &UserError{Message: MsgInvalidToken}
	}
	if strings.TrimSpace(password) == "" || strings.TrimSpace(confirm) == "" {
		return "", &UserError{Message: MsgFillAllFields}
	}
	if password != confirm {
		return "", &UserError{Message: MsgPasswordsMismatch}
	}
	if err := a.api.NewPassword(ctx, resetToken, password); err != nil {
		return "", &UserError{Message: MsgPasswordFailed, Err: err}
	}
	return MsgPasswordUpdated, nil
}

// ConfirmAccount activates the account behind a confirmation token and returns
// the activation token handed to the login screen.
func (a *Auth) ConfirmAccount(ctx context.Context, confirmToken string) (string, error) {
	token, err := a.api.SendAuthEmail(ctx, confirmToken)
	if err != nil {
		return "", &UserError{Message: MsgConfirmFailed, Err: err}
	}
	return token, nil
}

// messageOr prefers the backend's own message for 4xx answers.
func messageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
