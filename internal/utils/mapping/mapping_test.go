package mapping

import (
	"testing"
	"time"

	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_NullableColumns(t *testing.T) {
	d := domain.User{UserID: "u1", Username: "ana", Email: "ana@example.com", IsActive: true}

	m := ToModelUser(d)
	assert.False(t, m.LastEmail.Valid)
	assert.False(t, m.PasswordHash.Valid)
	assert.False(t, m.ResetTokenHash.Valid)
	assert.Equal(t, string(domain.ProviderLocal), m.AuthProvider)

	back := ToDomainUser(m)
	assert.Equal(t, "", back.PasswordHash)
	assert.Equal(t, domain.ProviderLocal, back.AuthProvider)
	assert.True(t, back.IsActive)
}

func TestUserMapping_KeepsSetValues(t *testing.T) {
	birthday := time.Date(1990, time.May, 4, 0, 0, 0, 0, time.UTC)
	d := domain.User{
		UserID:         "u1",
		LastEmail:      "old@example.com",
		Birthday:       &birthday,
		PasswordHash:   "hash",
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: "google-sub",
	}
	back := ToDomainUser(ToModelUser(d))
	assert.Equal(t, d, back)
}

func TestExpenseMapping_AuditTimesInUTC(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	created := time.Date(2026, time.March, 10, 21, 30, 0, 0, saoPaulo)
	d := domain.Expense{
		ExpenseID:   "e1",
		UserID:      "u1",
		AuditFields: domain.NewAuditFields("u1", created),
	}

	m := ToModelExpense(d)
	assert.Equal(t, time.UTC, m.CreatedAt.Location())
	assert.Equal(t, 11, m.CreatedAt.Day())
	assert.Equal(t, "u1", m.LastUpdatedBy)

	back := ToDomainExpense(m)
	assert.True(t, created.Equal(back.LastUpdatedAt))
	assert.Equal(t, time.UTC, back.LastUpdatedAt.Location())
}
