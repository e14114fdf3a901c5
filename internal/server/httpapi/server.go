// Package httpapi exposes the salaysay tracker over HTTP/JSON: the Google
// sign-in flow, the session endpoints, and the submission upload / listing /
// review operations.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/salaysay-tracker/backend/internal/logging"
	"github.com/salaysay-tracker/backend/internal/server/auth"
	"github.com/salaysay-tracker/backend/internal/server/models"
	"github.com/salaysay-tracker/backend/internal/server/services"
)

// ProfileService is the slice of the profile logic the handlers need.
type ProfileService interface {
	EnsureProfile(ctx context.Context, info *auth.UserInfo) (*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

// SessionService mints and rotates token pairs.
type SessionService interface {
	IssueTokenPair(ctx context.Context, userID string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// SubmissionService covers the upload, listing, review and deletion flows.
type SubmissionService interface {
	UploadBatch(ctx context.Context, userID, violationType string, files []services.UploadFile) ([]*models.UploadTask, error)
	List(ctx context.Context, callerID string, scope services.Scope) ([]*models.Submission, error)
	UpdateStatus(ctx context.Context, callerID string, scope services.Scope, id string, status models.Status) error
	Delete(ctx context.Context, callerID string, id string) error
	ViewURL(ctx context.Context, callerID string, scope services.Scope, id string) (string, error)
}

// Authenticator runs the OAuth code flow.
type Authenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.UserInfo, error)
}

// Options carries the construction parameters for the HTTP server.
type Options struct {
	Addr        string
	JWTSecret   []byte
	EmailDomain string
	MaxFileSize int64
}

type Server struct {
	echo        *echo.Echo
	logger      logging.Logger
	opts        Options
	google      Authenticator
	profiles    ProfileService
	sessions    SessionService
	submissions SubmissionService
}

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewServer(opts Options, logger logging.Logger, google Authenticator,
	ps ProfileService, ss SessionService, subs SubmissionService) *Server {

	s := &Server{
		echo:        echo.New(),
		logger:      logger.With("module", "httpapi"),
		opts:        opts,
		google:      google,
		profiles:    ps,
		sessions:    ss,
		submissions: subs,
	}

	s.echo.HideBanner = true
	s.echo.Validator = &echoValidator{validate: validator.New()}
	s.echo.HTTPErrorHandler = s.errorHandler

	s.echo.Use(middleware.Recover())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/api/health", s.handleHealth)

	s.echo.GET("/auth/google/login", s.handleGoogleLogin)
	s.echo.GET("/auth/google/callback", s.handleGoogleCallback)
	s.echo.POST("/api/auth/refresh", s.handleRefresh)
	s.echo.POST("/api/auth/logout", s.handleLogout)

	api := s.echo.Group("/api", s.requireAuth)
	api.GET("/session", s.handleSession)
	api.POST("/submissions", s.handleUpload)
	api.GET("/submissions", s.handleList)
	api.PATCH("/submissions/:id/status", s.handleUpdateStatus)
	api.DELETE("/submissions/:id", s.handleDelete)
	api.GET("/submissions/:id/url", s.handleViewURL)
}

// Run starts the listener and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "addr", s.opts.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
