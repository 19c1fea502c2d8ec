// Package di assembles the client application. injectors.go declares the
// graph for Wire; wire_gen.go is the generated wiring.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/client/client"
	"github.com/dmitrijs2005/talentledger/internal/client/config"
	"github.com/dmitrijs2005/talentledger/internal/client/photos"
	"github.com/dmitrijs2005/talentledger/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/talentledger/internal/client/screens"
	"github.com/dmitrijs2005/talentledger/internal/client/services"
	"github.com/dmitrijs2005/talentledger/internal/filex"
	"github.com/dmitrijs2005/talentledger/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func provideLogger(cfg *config.Config) (logging.Logger, func(), error) {
	var w io.Writer = os.Stderr
	cleanup := func() {}
	if cfg.LogFile != "" {
		path, err := filex.EnsureParentDir(cfg.LogFile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		cleanup = func() { _ = f.Close() }
	}
	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, w)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return logger, cleanup, nil
}

func provideDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	path, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("local database: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}

// provideGRPCClient's cleanup may run after AuthService.Close.
func provideGRPCClient(cfg *config.Config) (*client.GRPCClient, func(), error) {
	c, err := client.NewMarketClientService(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}

func provideMetadataRepository(db *sql.DB) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func provideClock() func() time.Time {
	return time.Now
}

// provideRegistry keeps the unlock counters of one process.
func provideRegistry() prometheus.Registerer {
	return prometheus.NewRegistry()
}

func providePhotoCache(cfg *config.Config, src *client.GRPCClient, logger logging.Logger) *photos.Cache {
	return photos.NewCache(src, cfg.PhotoCacheSizeBytes, cfg.PhotoCacheTTL, logger)
}

func provideScreenDeps(
	auth services.AuthService,
	directory services.DirectorySource,
	relationships services.RelationshipStore,
	unlocks services.UnlockCoordinator,
	photoCache *photos.Cache,
	logger logging.Logger,
) screens.Deps {
	return screens.Deps{
		Session:       auth,
		Directory:     directory,
		Relationships: relationships,
		Unlocks:       unlocks,
		Photos:        photoCache,
		Logger:        logger,
	}
}
