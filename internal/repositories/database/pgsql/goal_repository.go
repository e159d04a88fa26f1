package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	"github.com/planejamais/planeja_mais/internal/models"
	"github.com/planejamais/planeja_mais/internal/utils/mapping"
)

type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

const goalColumns = `goal_id, user_id, year, month, target,
	created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Year,
		&m.Month,
		&m.Target,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1 AND user_id = $2;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		return nil, mapNoRows(err, "find goal "+goalID)
	}
	goal := mapping.ToDomainGoal(m)
	return &goal, nil
}

func (r *PgxGoalRepository) FindGoalByPeriod(ctx context.Context, userID string, year, month int) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND year = $2 AND month = $3;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, userID, year, month))
	if err != nil {
		return nil, mapNoRows(err, fmt.Sprintf("find goal %d-%d", year, month))
	}
	goal := mapping.ToDomainGoal(m)
	return &goal, nil
}

// ListGoals returns the newest periods first, annual goals before the months of their year.
func (r *PgxGoalRepository) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY year DESC, month ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	modelGoals := []models.Goal{}
	for rows.Next() {
		m, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}
		modelGoals = append(modelGoals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return mapping.ToDomainGoalSlice(modelGoals), nil
}

func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID,
		m.UserID,
		m.Year,
		m.Month,
		m.Target,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save goal")
	}
	return nil
}

func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET year = $1, month = $2, target = $3, last_updated_at = $4, last_updated_by = $5
		WHERE goal_id = $6 AND user_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Year,
		m.Month,
		m.Target,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.GoalID,
		m.UserID,
	)
	if err != nil {
		return mapWriteError(err, "update goal")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", m.GoalID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goalID, apperrors.ErrNotFound)
	}
	return nil
}
