package mapping

import (
	"database/sql"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	provider := d.AuthProvider
	if provider == "" {
		provider = domain.ProviderLocal
	}
	return models.User{
		UserID:         d.UserID,
		Name:           d.Name,
		Username:       d.Username,
		Email:          d.Email,
		LastEmail:      nullString(d.LastEmail),
		Birthday:       d.Birthday,
		IsActive:       d.IsActive,
		PasswordHash:   nullString(d.PasswordHash),
		AuthProvider:   string(provider),
		ProviderUserID: nullString(d.ProviderUserID),
		ResetTokenHash: nullString(d.ResetTokenHash),
		AuditFields:    auditToModel(d.AuditFields),
		DeletedAt:      d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Name:           m.Name,
		Username:       m.Username,
		Email:          m.Email,
		LastEmail:      m.LastEmail.String,
		Birthday:       m.Birthday,
		IsActive:       m.IsActive,
		PasswordHash:   m.PasswordHash.String,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: m.ProviderUserID.String,
		ResetTokenHash: m.ResetTokenHash.String,
		AuditFields:    auditToDomain(m.AuditFields),
		DeletedAt:      m.DeletedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
