package sessions

import (
	"context"
	"time"

	"github.com/salaysay-tracker/backend/internal/server/models"
)

type Repository interface {
	// Create inserts a refresh token for userID expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find returns the stored token row or common.ErrNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete removes a refresh token by its token string.
	Delete(ctx context.Context, token string) error
}
