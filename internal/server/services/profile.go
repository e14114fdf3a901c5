// Package services contains the server-side business logic: profile
// bootstrap, session token lifecycle, and the submission upload / listing /
// review flows.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/server/auth"
	"github.com/salaysay-tracker/backend/internal/server/models"
	"github.com/salaysay-tracker/backend/internal/server/repositories/repomanager"
)

// ProfileService owns the session/profile bootstrap: a signed-in identity
// gets a profile row created lazily on first sight, provided its email
// belongs to the accepted domain.
type ProfileService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	domain string
}

func NewProfileService(db *sql.DB, repos repomanager.RepositoryManager, domain string) *ProfileService {
	return &ProfileService{db: db, repos: repos, domain: domain}
}

// EnsureProfile returns the profile for the given identity, creating it if
// this is the first sign-in. Identities outside the accepted email domain
// are rejected with common.ErrWrongEmailDomain.
func (s *ProfileService) EnsureProfile(ctx context.Context, info *auth.UserInfo) (*models.Profile, error) {
	if !auth.EmailInDomain(info.Email, s.domain) {
		return nil, common.ErrWrongEmailDomain
	}

	repo := s.repos.Profiles(s.db)

	profile, err := repo.GetByID(ctx, info.Sub)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	profile = &models.Profile{
		ID:        info.Sub,
		Email:     info.Email,
		FullName:  info.Name,
		AvatarURL: info.Picture,
	}
	if err := repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	return profile, nil
}

// Get returns the profile for an already-authenticated user ID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repos.Profiles(s.db).GetByID(ctx, userID)
}
