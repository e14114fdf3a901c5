// Package profiles provides a PostgreSQL-backed repository for user profiles.
// A profile row mirrors one OAuth identity and is created lazily on first
// sign-in.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/dbx"
	"github.com/salaysay-tracker/backend/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), created_at
		FROM profiles
		WHERE id = $1
	`
	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, full_name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET full_name = EXCLUDED.full_name, avatar_url = EXCLUDED.avatar_url
	`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Email, p.FullName, p.AvatarURL); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
