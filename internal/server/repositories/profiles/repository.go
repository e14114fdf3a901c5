package profiles

import (
	"context"

	"github.com/salaysay-tracker/backend/internal/server/models"
)

type Repository interface {
	// GetByID returns the profile for the given identity,
	// or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	// Upsert inserts the profile or refreshes its name/avatar if it exists.
	Upsert(ctx context.Context, p *models.Profile) error
}
