// Package server initializes and runs the salaysay tracker server: it wires
// the database, object storage, OAuth and the HTTP API together and handles
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/salaysay-tracker/backend/internal/logging"
	"github.com/salaysay-tracker/backend/internal/server/auth"
	"github.com/salaysay-tracker/backend/internal/server/config"
	"github.com/salaysay-tracker/backend/internal/server/httpapi"
	"github.com/salaysay-tracker/backend/internal/server/repositories/repomanager"
	"github.com/salaysay-tracker/backend/internal/server/services"
	"github.com/salaysay-tracker/backend/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := storage.NewS3Store(ctx, storage.S3Config{
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	google := auth.NewGoogleAuthenticator(cfg.GoogleClientID, cfg.GoogleClientSecret,
		cfg.OAuthRedirectURL, cfg.AllowedEmailDomain)

	ps := services.NewProfileService(db, repos, cfg.AllowedEmailDomain)
	ss := services.NewSessionService(db, repos, cfg)
	subs := services.NewSubmissionService(db, repos, blobs, logger, cfg.MaxFileSize, cfg.SignedURLValidityDuration)

	httpServer := httpapi.NewServer(httpapi.Options{
		Addr:        cfg.EndpointAddr,
		JWTSecret:   []byte(cfg.SecretKey),
		EmailDomain: cfg.AllowedEmailDomain,
		MaxFileSize: cfg.MaxFileSize,
	}, logger, google, ps, ss, subs)

	return &App{config: cfg, logger: logger, http: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	wg.Wait()
	app.logger.Info(ctx, "app stopped")
}
