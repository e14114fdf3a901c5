// Package submissions provides a PostgreSQL-backed repository for salaysay
// submission rows. Each row references a blob in object storage through its
// file_path column; keeping the two in step is the service layer's problem,
// not the repository's.
package submissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/dbx"
	"github.com/salaysay-tracker/backend/internal/server/models"
)

// pgForeignKeyViolation is the PostgreSQL error code for FK failures
// (inserting a submission for a profile that does not exist).
const pgForeignKeyViolation = "23503"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO salaysay_submissions (id, user_id, file_path, violation_type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, s.ID, s.UserID, s.FilePath, s.ViolationType, s.Status).
		Scan(&s.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, userID string) ([]*models.Submission, error) {
	query := `
		SELECT id, user_id, file_path, violation_type, status, created_at
		FROM salaysay_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select submissions: %w", err)
	}
	defer rows.Close()

	var result []*models.Submission
	for rows.Next() {
		item := &models.Submission{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.FilePath, &item.ViolationType, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Submission, error) {
	query := `
		SELECT s.id, s.user_id, s.file_path, s.violation_type, s.status, s.created_at,
		       p.email, COALESCE(p.full_name, ''), COALESCE(p.avatar_url, ''), p.created_at
		FROM salaysay_submissions s
		JOIN profiles p ON p.id = s.user_id
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select submissions: %w", err)
	}
	defer rows.Close()

	var result []*models.Submission
	for rows.Next() {
		item := &models.Submission{Owner: &models.Profile{}}
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.FilePath, &item.ViolationType, &item.Status, &item.CreatedAt,
			&item.Owner.Email, &item.Owner.FullName, &item.Owner.AvatarURL, &item.Owner.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Owner.ID = item.UserID
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `
		SELECT id, user_id, file_path, violation_type, status, created_at
		FROM salaysay_submissions
		WHERE id = $1
	`
	item := &models.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.UserID, &item.FilePath, &item.ViolationType, &item.Status, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	query := `UPDATE salaysay_submissions SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return translate(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM salaysay_submissions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translate(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// translate maps driver errors onto the shared sentinel set, so callers
// never have to inspect error message text.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %s", common.ErrIntegrity, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}
