package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archdesign/config"
	"github.com/GoSim-25-26J-441/archdesign/internal/backup"
	"github.com/GoSim-25-26J-441/archdesign/internal/bootstrap"
	"github.com/GoSim-25-26J-441/archdesign/internal/logging"
	"github.com/GoSim-25-26J-441/archdesign/internal/projects/store"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/filestore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("open storage backend", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer backend.Close()

	st, err := store.Open(ctx, backend, store.WithKey(cfg.Store.Key), store.WithLogger(logger))
	if err != nil {
		logger.Fatal("open project store", zap.Error(err))
	}

	if fs, ok := backend.(*filestore.Store); ok && cfg.Store.WatchFile {
		w, err := filestore.NewWatcher(fs, st.Key(), st.Reload, logger)
		if err != nil {
			logger.Fatal("create file watcher", zap.Error(err))
		}
		if err := w.Start(ctx); err != nil {
			logger.Fatal("start file watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	if cfg.Backup.Schedule != "" {
		sched := backup.NewScheduler(st, cfg.Backup.Dir, cfg.Backup.Retain, logger)
		if err := sched.Start(cfg.Backup.Schedule); err != nil {
			logger.Fatal("start backup scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "archdesign",
		Version:        cfg.App.Version,
		BackendKind:    cfg.Store.Backend,
		Backend:        backend,
		Store:          st,
		Logger:         logger,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.Store.Backend),
			zap.String("key", st.Key()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
