// @title CatCollector
// @version 1.0
// @description Registro de gatos, toys, feedings y fotos por usuario.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cat-collector/internal/adapters/auth/session"
	photomem "cat-collector/internal/adapters/photostore/memory"
	photos3 "cat-collector/internal/adapters/photostore/s3"
	mem "cat-collector/internal/adapters/storage/memory"
	pg "cat-collector/internal/adapters/storage/postgres"
	"cat-collector/internal/adapters/storage/sqlite"
	"cat-collector/internal/platform/config"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/platform/metrics"
	"cat-collector/internal/ports/storage"
	"cat-collector/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid config", logger.Fields{"err": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open store", logger.Fields{"err": err, "driver": string(cfg.Store)})
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	photos, err := openPhotos(ctx, cfg)
	if err != nil {
		log.Error("open photo store", logger.Fields{"err": err, "driver": string(cfg.Photos.Driver)})
		os.Exit(1)
	}

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Error("session manager", logger.Fields{"err": err})
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart", nil)
	}
	if cfg.DevAuth {
		log.Warn("DEV_AUTH enabled, X-Debug-User-ID is trusted", nil)
	}

	r := router.NewRouter(router.Options{
		Store:              store,
		Photos:             photos,
		PhotoUploadTimeout: cfg.Photos.UploadTimeout,
		Sessions:           sessions,
		DevAuth:            cfg.DevAuth,
		Location:           cfg.Location,
		Logger:             log,
		Metrics:            metrics.New(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{
			"addr":        cfg.Addr,
			"store":       string(cfg.Store),
			"photo_store": string(cfg.Photos.Driver),
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", logger.Fields{"err": err})
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down", nil)
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Error("shutdown", logger.Fields{"err": err})
		}
	}
}

func openStore(ctx context.Context, cfg config.Config) (router.Store, *sql.DB, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return pg.OpenStore(ctx, cfg.DSN)
	case config.StoreSQLite:
		return sqlite.OpenStore(ctx, cfg.SQLitePath)
	default:
		return mem.NewDB(), nil, nil
	}
}

func openPhotos(ctx context.Context, cfg config.Config) (storage.PhotoStore, error) {
	if cfg.Photos.Driver != config.PhotoS3 {
		return photomem.New(cfg.Photos.PublicBaseURL()), nil
	}
	return photos3.New(ctx, photos3.Config{
		BaseURL:   cfg.Photos.BaseURL,
		Bucket:    cfg.Photos.Bucket,
		Region:    cfg.Photos.Region,
		Endpoint:  cfg.Photos.Endpoint,
		PathStyle: cfg.Photos.PathStyle,
	})
}
