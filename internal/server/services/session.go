package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/dbx"
	"github.com/salaysay-tracker/backend/internal/server/auth"
	"github.com/salaysay-tracker/backend/internal/server/config"
	"github.com/salaysay-tracker/backend/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService mints and rotates token pairs. Identity verification itself
// happens upstream in the OAuth callback; this service only manages the
// tokens that keep the session alive afterwards.
type SessionService struct {
	db              *sql.DB
	repos           repomanager.RepositoryManager
	jwtSecret       []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewSessionService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:              db,
		repos:           repos,
		jwtSecret:       []byte(cfg.SecretKey),
		accessValidity:  cfg.AccessTokenValidityDuration,
		refreshValidity: cfg.RefreshTokenValidityDuration,
	}
}

// IssueTokenPair creates a fresh access+refresh pair for userID. Called from
// the OAuth callback once the profile is in place.
func (s *SessionService) IssueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	return s.generateTokenPair(ctx, userID, s.db)
}

// Refresh validates a refresh token, rotates it transactionally, and returns
// a fresh TokenPair. Expired tokens yield common.ErrRefreshTokenExpired.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repos.Sessions(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repos.Sessions(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the refresh token; the access token simply ages out.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	return s.repos.Sessions(s.db).Delete(ctx, refreshToken)
}

func (s *SessionService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessValidity)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}
	if err := s.repos.Sessions(tx).Create(ctx, userID, refresh, s.refreshValidity); err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
