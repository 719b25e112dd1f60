// Package server initializes and runs the daylog application: it opens the
// local store, connects the remote object storage, wires the sync engine and
// serves the HTTP API with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/daylog/internal/drive"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/server/config"
	"github.com/dmitrijs2005/daylog/internal/server/rest"
	"github.com/dmitrijs2005/daylog/internal/store"
	"github.com/dmitrijs2005/daylog/internal/syncer"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.Store
	rest   *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(cfg.LogFile)

	st, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	s3, err := drive.NewS3Store(ctx, drive.S3Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	adapter := drive.NewAdapter(s3, cfg.RemoteRoot, logger)
	engine := syncer.New(st, adapter, logger)

	restServer := rest.NewServer(st, engine, adapter,
		cfg.Users, []byte(cfg.SecretKey), cfg.SessionValidityDuration, logger)

	return &App{config: cfg, logger: logger, store: st, rest: restServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:         app.config.EndpointAddr,
		Handler:      app.rest.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	if err := app.store.Close(); err != nil {
		return fmt.Errorf("store close error: %w", err)
	}

	app.logger.Info(ctx, "stopped")
	return nil
}
