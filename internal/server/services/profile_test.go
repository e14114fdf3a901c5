package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/dbx"
	"github.com/salaysay-tracker/backend/internal/server/auth"
	"github.com/salaysay-tracker/backend/internal/server/models"
	"github.com/salaysay-tracker/backend/internal/server/repositories/profiles"
)

type fakeProfilesRepo struct {
	profiles.Repository

	byID    map[string]*models.Profile
	upserts []*models.Profile
	getErr  error
}

func (f *fakeProfilesRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, p *models.Profile) error {
	f.upserts = append(f.upserts, p)
	if f.byID == nil {
		f.byID = map[string]*models.Profile{}
	}
	f.byID[p.ID] = p
	return nil
}

type profileRepoManager struct {
	fakeRepoManager
	profiles *fakeProfilesRepo
}

func (m *profileRepoManager) Profiles(db dbx.DBTX) profiles.Repository { return m.profiles }

func newProfileService(t *testing.T) (*ProfileService, *fakeProfilesRepo) {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := &fakeProfilesRepo{}
	return NewProfileService(db, &profileRepoManager{profiles: repo}, "neu.edu.ph"), repo
}

func TestEnsureProfile_CreatesLazily(t *testing.T) {
	svc, repo := newProfileService(t)

	info := &auth.UserInfo{Sub: "sub-1", Email: "juan@neu.edu.ph", Name: "Juan", Picture: "https://p/x.png"}
	p, err := svc.EnsureProfile(context.Background(), info)
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	if p.ID != "sub-1" || p.Email != "juan@neu.edu.ph" {
		t.Errorf("profile = %+v", p)
	}
	if len(repo.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserts))
	}

	// Second sign-in finds the row and does not create another.
	if _, err := svc.EnsureProfile(context.Background(), info); err != nil {
		t.Fatalf("second EnsureProfile: %v", err)
	}
	if len(repo.upserts) != 1 {
		t.Fatalf("profile must be created once, upserts = %d", len(repo.upserts))
	}
}

func TestEnsureProfile_RejectsForeignDomain(t *testing.T) {
	svc, repo := newProfileService(t)

	info := &auth.UserInfo{Sub: "sub-2", Email: "someone@gmail.com"}
	_, err := svc.EnsureProfile(context.Background(), info)
	if !errors.Is(err, common.ErrWrongEmailDomain) {
		t.Fatalf("expected ErrWrongEmailDomain, got %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("no profile may be created for a foreign domain")
	}
}

func TestEnsureProfile_PropagatesLookupError(t *testing.T) {
	svc, repo := newProfileService(t)
	repo.getErr = errors.New("db down")

	_, err := svc.EnsureProfile(context.Background(), &auth.UserInfo{Sub: "s", Email: "x@neu.edu.ph"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("must not upsert on an inconclusive lookup")
	}
}
