package dto

import (
	"time"
)

// CreateUserRequest is the registration body. The password travels in the
// passwordHash field and is hashed server side.
type CreateUserRequest struct {
	Name      string     `json:"name" binding:"required,max=120"`
	Username  string     `json:"user" binding:"required,min=3,max=60"`
	Email     string     `json:"email" binding:"required,email,max=254"`
	LastEmail string     `json:"lastEmail" binding:"omitempty,email"`
	Birthday  *time.Time `json:"birthday"`
	Password  string     `json:"passwordHash" binding:"required,min=6,max=72"`
}

// LoginRequest accepts either the username or the e-mail in User.
type LoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"passwordHash" binding:"required"`
	Remember bool   `json:"remember"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=1,max=120"`
	Username *string    `json:"user" binding:"omitempty,min=3,max=60"`
	Email    *string    `json:"email" binding:"omitempty,email,max=254"`
	Birthday *time.Time `json:"birthday"`
	Password *string    `json:"passwordHash" binding:"omitempty,min=6,max=72"`
}

// NewPasswordRequest carries the password chosen on the reset screen.
type NewPasswordRequest struct {
	Password string `json:"passwordHash" binding:"required,min=6,max=72"`
}

// GoogleLoginRequest carries the ID token obtained by Google Sign-In.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
