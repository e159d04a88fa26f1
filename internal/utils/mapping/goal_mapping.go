package mapping

import (
	"github.com/planejamais/planeja_mais/internal/core/domain"
	"github.com/planejamais/planeja_mais/internal/models"
)

func ToModelGoal(d domain.Goal) models.Goal {
	return models.Goal{
		GoalID:      d.GoalID,
		UserID:      d.UserID,
		Year:        d.Year,
		Month:       d.Month,
		Target:      d.Target,
		AuditFields: auditToModel(d.AuditFields),
	}
}

func ToDomainGoal(m models.Goal) domain.Goal {
	return domain.Goal{
		GoalID:      m.GoalID,
		UserID:      m.UserID,
		Year:        m.Year,
		Month:       m.Month,
		Target:      m.Target,
		AuditFields: auditToDomain(m.AuditFields),
	}
}

func ToDomainGoalSlice(ms []models.Goal) []domain.Goal {
	ds := make([]domain.Goal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGoal(m)
	}
	return ds
}
