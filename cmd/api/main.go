// Package main is the entry point for the travel inquiry API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/travel-inquiry/backend/internal/config"
	"github.com/pkordes/travel-inquiry/backend/internal/handler"
	"github.com/pkordes/travel-inquiry/backend/internal/metrics"
	"github.com/pkordes/travel-inquiry/backend/internal/notify"
	"github.com/pkordes/travel-inquiry/backend/internal/repo"
	"github.com/pkordes/travel-inquiry/backend/internal/service"
	"github.com/pkordes/travel-inquiry/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.RunMigrations {
		if err := migrate(context.Background(), pool); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// --- Services ---------------------------------------------------------
	sender, err := newSender(cfg.Mail, logger)
	if err != nil {
		slog.Error("failed to configure mail transport", "error", err)
		os.Exit(1)
	}
	slog.Info("mail transport configured", "transport", cfg.Mail.Transport)

	dispatcher := notify.NewDispatcher(sender, cfg.Mail.From, cfg.Mail.Operator, logger, m.NotifyHooks())
	submissions := service.NewSubmissionService(repo.NewSubmissionRepo(pool), dispatcher, logger, m.ServiceHooks())

	// --- Router -----------------------------------------------------------
	srv := handler.NewServer(submissions, cfg.APIEndpoint, logger)
	router := handler.NewRouter(srv, handler.RouterOptions{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Metrics:      m,
		Gatherer:     reg,
	})

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for one database write and two mail sends.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + 2*cfg.Mail.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending goose migration embedded in migrations.FS.
// goose needs a *sql.DB, so the pool is adapted through pgx's stdlib wrapper.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	slog.Info("database migrations applied", "count", len(results))
	return nil
}

// newSender selects the notification transport named in MAIL_TRANSPORT.
func newSender(cfg config.MailConfig, logger *slog.Logger) (notify.Sender, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		return notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Timeout:  cfg.Timeout,
		}), nil
	case config.TransportWebhook:
		return notify.NewWebhookSender(cfg.WebhookURL, cfg.Timeout), nil
	case config.TransportLog:
		return notify.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}
