package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"scheduling-service/api"
	"scheduling-service/audit"
	"scheduling-service/config"
	"scheduling-service/database"
	"scheduling-service/logger"
	"scheduling-service/metrics"
	"scheduling-service/user"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder audit.Recorder = audit.Nop{}
	if cfg.AuditEnabled() {
		log.Info("attempting to connect to database...")
		db, err := database.Connect(cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("database connect: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("database ping: %w", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("successfully connected to database, decision audit log enabled")
		recorder = audit.NewAccessor(db)
	} else {
		log.Info("POSTGRES_DSN not set, decision audit log disabled")
	}

	m := metrics.New()
	registry := user.NewRegistry(user.WithOnCreate(m.SetRegisteredUsers))

	service := api.NewAPI(registry,
		api.WithRecorder(recorder),
		api.WithMetrics(m),
		api.WithLogger(log),
		api.WithRateLimit(cfg.RateLimitRPS),
	)
	service.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           service.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
