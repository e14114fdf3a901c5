package submissions

import (
	"context"

	"github.com/salaysay-tracker/backend/internal/server/models"
)

type Repository interface {
	// Create inserts a new submission row.
	Create(ctx context.Context, s *models.Submission) error
	// SelectByOwner returns one user's submissions, newest first.
	SelectByOwner(ctx context.Context, userID string) ([]*models.Submission, error)
	// SelectAll returns every submission joined with its owner's profile,
	// newest first.
	SelectAll(ctx context.Context) ([]*models.Submission, error)
	// GetByID returns one submission or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	// UpdateStatus sets the review status of the given row.
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	// Delete removes the row by id.
	Delete(ctx context.Context, id string) error
}
