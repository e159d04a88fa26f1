package domain

import "time"

// AuthProvider records how an account signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an account holder.
type User struct {
	UserID    string     `json:"_id"`
	Name      string     `json:"name"`
	Username  string     `json:"user"`
	Email     string     `json:"email"`
	LastEmail string     `json:"lastEmail"` // previous address, kept after an e-mail change
	Birthday  *time.Time `json:"birthday,omitempty"`
	IsActive  bool       `json:"isActive"`

	PasswordHash   string       `json:"-"`
	AuthProvider   AuthProvider `json:"-"`
	ProviderUserID string       `json:"-"`
	// ResetTokenHash makes password reset links single-use.
	ResetTokenHash string `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"-"`
}

// GoogleUserInfo is the subset of Google ID-token claims used to sign in.
type GoogleUserInfo struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
