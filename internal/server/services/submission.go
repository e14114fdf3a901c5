package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/logging"
	"github.com/salaysay-tracker/backend/internal/server/models"
	"github.com/salaysay-tracker/backend/internal/server/repositories/repomanager"
	"github.com/salaysay-tracker/backend/internal/server/storage"
)

// pdfContentType is the only MIME type the acceptance gate lets through.
const pdfContentType = "application/pdf"

// Scope selects whose submissions an operation covers. Viewing all users'
// submissions also grants status-edit rights, mirroring how the review
// screen has always behaved.
type Scope string

const (
	ScopeMine Scope = "mine"
	ScopeAll  Scope = "all"
)

// UploadFile is one candidate file of an upload batch.
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Indirection points for tests.
var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// SubmissionService orchestrates the upload, listing/reconciliation, review
// and deletion flows over the submission rows and their blobs.
type SubmissionService struct {
	db          *sql.DB
	repos       repomanager.RepositoryManager
	blobs       storage.BlobStore
	logger      logging.Logger
	maxFileSize int64
	urlValidity time.Duration
}

func NewSubmissionService(db *sql.DB, repos repomanager.RepositoryManager, blobs storage.BlobStore,
	logger logging.Logger, maxFileSize int64, urlValidity time.Duration) *SubmissionService {
	return &SubmissionService{
		db:          db,
		repos:       repos,
		blobs:       blobs,
		logger:      logger.With("module", "submissions"),
		maxFileSize: maxFileSize,
		urlValidity: urlValidity,
	}
}

// ValidateBatch applies the acceptance gate: every file must be a PDF and at
// most maxFileSize bytes. The first violation rejects the whole batch; no
// partial acceptance.
func (s *SubmissionService) ValidateBatch(files []UploadFile) error {
	for _, f := range files {
		if f.ContentType != pdfContentType {
			return fmt.Errorf("%w: %s", common.ErrWrongFileType, f.Name)
		}
		if f.Size > s.maxFileSize {
			return fmt.Errorf("%w: %s", common.ErrFileTooLarge, f.Name)
		}
	}
	return nil
}

// UploadBatch runs the upload flow for a batch of already-gated files, one
// file at a time: derive a unique storage key, write the blob, insert the
// metadata row with status pending_review. A failure marks that file's task
// as errored and moves on; a blob that was written before a failing insert
// is deliberately left in place for the reconciliation sweep to account for.
func (s *SubmissionService) UploadBatch(ctx context.Context, userID, violationType string, files []UploadFile) ([]*models.UploadTask, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	if violationType == "" {
		return nil, common.ErrMissingCategory
	}
	if !models.ValidViolationType(violationType) {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownCategory, violationType)
	}
	if err := s.ValidateBatch(files); err != nil {
		return nil, err
	}

	tasks := make([]*models.UploadTask, len(files))
	for i, f := range files {
		tasks[i] = &models.UploadTask{FileName: f.Name, State: models.UploadPending}
	}

	for i, f := range files {
		task := tasks[i]
		task.State = models.UploadUploading

		sub, err := s.upload(ctx, userID, violationType, f)
		if err != nil {
			s.logger.Error(ctx, "upload failed", "file", f.Name, "error", err)
			task.State = models.UploadError
			task.Error = UploadFailureMessage(err)
			continue
		}
		task.State = models.UploadCompleted
		task.Submission = sub
	}
	return tasks, nil
}

func (s *SubmissionService) upload(ctx context.Context, userID, violationType string, f UploadFile) (*models.Submission, error) {
	key := storageKey(f.Name)

	if err := s.blobs.Put(ctx, key, f.Body, f.ContentType, f.Size); err != nil {
		return nil, err
	}

	sub := &models.Submission{
		ID:            newID(),
		UserID:        userID,
		FilePath:      key,
		ViolationType: violationType,
		Status:        models.StatusPendingReview,
	}
	// No compensation here: if the insert fails the blob stays behind, and
	// the reconciliation sweep is the mechanism that accounts for strays.
	if err := s.repos.Submissions(s.db).Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// storageKey derives a unique blob key from the upload instant and the
// original filename, matching the `<unix-millis>_<name>` layout that
// Submission.FileName undoes for display.
func storageKey(filename string) string {
	return fmt.Sprintf("%d_%s", timeNow().UnixMilli(), filename)
}

// List fetches the rows in scope, newest first, and reconciles each against
// object storage: rows whose blob has vanished are removed (best-effort,
// log-only) and excluded from the result. The existence checks run
// concurrently; each is an independent remote call.
func (s *SubmissionService) List(ctx context.Context, callerID string, scope Scope) ([]*models.Submission, error) {
	repo := s.repos.Submissions(s.db)

	var (
		rows []*models.Submission
		err  error
	)
	if scope == ScopeAll {
		rows, err = repo.SelectAll(ctx)
	} else {
		rows, err = repo.SelectByOwner(ctx, callerID)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}

	present := make([]bool, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		g.Go(func() error {
			ok, err := s.blobs.Exists(gctx, row.FilePath)
			if err != nil {
				// Keep the row when the check itself fails; only a
				// confirmed missing blob triggers cleanup.
				s.logger.Warn(gctx, "existence check failed", "key", row.FilePath, "error", err)
				present[i] = true
				return nil
			}
			present[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := rows[:0]
	for i, row := range rows {
		if present[i] {
			result = append(result, row)
			continue
		}
		if err := repo.Delete(ctx, row.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "failed to delete orphan row", "id", row.ID, "error", err)
		}
	}
	return result, nil
}

// UpdateStatus sets a submission's review status. The caller must own the
// row, or be operating in the all-users scope.
func (s *SubmissionService) UpdateStatus(ctx context.Context, callerID string, scope Scope, id string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", common.ErrInvalidStatus, status)
	}

	repo := s.repos.Submissions(s.db)
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.UserID != callerID && scope != ScopeAll {
		return common.ErrForbidden
	}
	return repo.UpdateStatus(ctx, id, status)
}

// Delete removes a submission, owner only: blob first, then row. If the blob
// delete fails the row is left untouched; if the row delete fails afterwards
// the orphaned row is the sweep's to clean up.
func (s *SubmissionService) Delete(ctx context.Context, callerID string, id string) error {
	repo := s.repos.Submissions(s.db)
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.UserID != callerID {
		return common.ErrForbidden
	}

	if err := s.blobs.Delete(ctx, row.FilePath); err != nil {
		return fmt.Errorf("error deleting blob: %w", err)
	}
	return repo.Delete(ctx, id)
}

// ViewURL issues a time-limited signed read URL for a submission's blob.
// Visible rows are viewable: the owner always, anyone in all-users scope.
func (s *SubmissionService) ViewURL(ctx context.Context, callerID string, scope Scope, id string) (string, error) {
	row, err := s.repos.Submissions(s.db).GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if row.UserID != callerID && scope != ScopeAll {
		return "", common.ErrForbidden
	}
	return s.blobs.SignedGetURL(ctx, row.FilePath, s.urlValidity)
}

// UploadFailureMessage renders a remote upload failure as the user-facing
// description shown in the client toast. The mapping switches on the closed
// error kinds coming out of the storage and database layers.
func UploadFailureMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrBucketNotFound):
		return "Storage bucket not found. Please contact support."
	case errors.Is(err, common.ErrPermissionDenied):
		return "Permission denied. Please check your authentication status."
	case errors.Is(err, common.ErrIntegrity):
		return "Database relation error. User profile may not exist."
	default:
		return "There was an error uploading your file. Please try again."
	}
}
