// Package cli implements the coinkeeper command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/coinkeeper/internal/client/auth"
	"github.com/dmitrijs2005/coinkeeper/internal/client/config"
	"github.com/dmitrijs2005/coinkeeper/internal/client/numista"
	"github.com/dmitrijs2005/coinkeeper/internal/client/remote"
	"github.com/dmitrijs2005/coinkeeper/internal/client/services"
	"github.com/dmitrijs2005/coinkeeper/internal/client/storage"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
)

// App wires configuration, storage, remote access and services together
// for the command handlers.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Repos   *storage.Repositories
	Session *auth.Session
	Remote  remote.Client

	Collection services.CollectionService
	Sync       services.SyncService
	Numista    *numista.Client
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	repos, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	session, err := auth.Load()
	if err != nil {
		logger.Warn(ctx, "ignoring unreadable session", "error", err)
	}
	// Without a session the app runs in guest mode: everything works
	// locally, sync commands demand a login first.
	userID := ""
	if session != nil {
		userID = session.UserID
	}

	remoteClient, err := remote.NewS3Client(ctx, remote.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Timeout:   cfg.RequestTimeout,
	})
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("failed to initialize remote client: %w", err)
	}

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Repos:      repos,
		Session:    session,
		Remote:     remoteClient,
		Collection: services.NewCollectionService(userID, repos.UserCoins, repos.Catalog, remoteClient, logger),
		Sync:       services.NewSyncService(userID, repos.UserCoins, repos.Metadata, remoteClient, logger),
		Numista:    numista.NewClient(cfg.NumistaAPIKey, cfg.NumistaMaxRequests, cfg.RequestTimeout),
	}
	return app, nil
}

func (a *App) Close() error {
	return a.Repos.Close()
}

// RequireLogin guards commands that talk to the remote backend.
func (a *App) RequireLogin() error {
	if a.Session == nil {
		return fmt.Errorf("%w: not logged in, run 'coinkeeper login' first", common.ErrValidation)
	}
	return nil
}
