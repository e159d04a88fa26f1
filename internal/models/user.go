package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Username       string         `db:"username"`
	Email          string         `db:"email"`
	LastEmail      sql.NullString `db:"last_email"`
	Birthday       *time.Time     `db:"birthday"`
	IsActive       bool           `db:"is_active"`
	PasswordHash   sql.NullString `db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	ResetTokenHash sql.NullString `db:"reset_token_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
