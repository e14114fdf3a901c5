package repomanager

import (
	"context"
	"database/sql"

	"github.com/salaysay-tracker/backend/internal/dbx"
	"github.com/salaysay-tracker/backend/internal/server/repositories/profiles"
	"github.com/salaysay-tracker/backend/internal/server/repositories/sessions"
	"github.com/salaysay-tracker/backend/internal/server/repositories/submissions"
)

// RepositoryManager hands out repositories bound to a DBTX, so a service can
// run several repos against one transaction handle.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Submissions(db dbx.DBTX) submissions.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
