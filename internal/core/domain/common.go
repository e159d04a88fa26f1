package domain

import "time"

// AuditFields records who created and last changed a row. Every row is written
// by its owner, so the actor is always a user ID.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"-"`
	LastUpdatedAt time.Time `json:"updatedAt"`
	LastUpdatedBy string    `json:"-"`
}

// NewAuditFields stamps a new row created by actor at now.
func NewAuditFields(actor string, now time.Time) AuditFields {
	return AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor}
}

// Touch marks the row as changed by actor at now.
func (a *AuditFields) Touch(actor string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actor
}
