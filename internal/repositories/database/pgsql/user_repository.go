package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planejamais/planeja_mais/internal/apperrors"
	"github.com/planejamais/planeja_mais/internal/core/domain"
	portsrepo "github.com/planejamais/planeja_mais/internal/core/ports/repositories"
	"github.com/planejamais/planeja_mais/internal/models"
	"github.com/planejamais/planeja_mais/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, name, username, email, last_email, birthday, is_active, password_hash,
	auth_provider, provider_user_id, reset_token_hash,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Username,
		&m.Email,
		&m.LastEmail,
		&m.Birthday,
		&m.IsActive,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.ResetTokenHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxUserRepository) findOne(ctx context.Context, where, tail string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL AND ` + where + ` ` + tail + `;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "find user")
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, "", userID)
}

func (r *PgxUserRepository) FindUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	// A username wins over an e-mail that happens to look the same.
	return r.findOne(ctx, `(username = $1 OR lower(email) = lower($1))`,
		`ORDER BY (username = $1) DESC LIMIT 1`, login)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `lower(email) = lower($1)`, "", email)
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, `auth_provider = $1 AND provider_user_id = $2`, "", string(provider), providerUserID)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, name, username, email, last_email, birthday, is_active, password_hash,
			auth_provider, provider_user_id, reset_token_hash,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Username,
		m.Email,
		m.LastEmail,
		m.Birthday,
		m.IsActive,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.ResetTokenHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = $1, username = $2, email = $3, last_email = $4, birthday = $5, is_active = $6,
		    password_hash = $7, auth_provider = $8, provider_user_id = $9, reset_token_hash = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE user_id = $13 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Username,
		m.Email,
		m.LastEmail,
		m.Birthday,
		m.IsActive,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.ResetTokenHash,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.UserID,
	)
	if err != nil {
		return mapWriteError(err, "update user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) SetResetTokenHash(ctx context.Context, userID string, hash string, at time.Time) error {
	query := `
		UPDATE users
		SET reset_token_hash = NULLIF($1, ''), last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $3 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, hash, at, userID)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ActivateUser(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE users
		SET is_active = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, at, userID)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkUserDeleted soft-deletes the user and removes their expenses and goals
// in one transaction.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE users
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2, reset_token_hash = NULL
		WHERE user_id = $3 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, deletedAt, deletedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete user expenses: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM goals WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete user goals: %w", err)
	}
	return r.Commit(ctx, tx)
}
