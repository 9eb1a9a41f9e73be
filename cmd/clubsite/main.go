// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clubarena/clubsite-go/internal/cache"
	"github.com/clubarena/clubsite-go/internal/config"
	"github.com/clubarena/clubsite-go/internal/handler"
	"github.com/clubarena/clubsite-go/internal/logging"
	"github.com/clubarena/clubsite-go/internal/notify"
	"github.com/clubarena/clubsite-go/internal/payment"
	"github.com/clubarena/clubsite-go/internal/scheduler"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/session"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/util"
	"github.com/clubarena/clubsite-go/internal/verification"
	"github.com/clubarena/clubsite-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "path to the environment file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	buildInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
	if *showVersion {
		fmt.Println("clubsite", buildInfo.String())
		return nil
	}

	// Missing .env is fine: configuration can come entirely from the
	// process environment.
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.DBPath = util.AbsPath(cfg.DBPath)
	cfg.UploadsDir = util.AbsPath(cfg.UploadsDir)

	if err := util.EnsureDir(filepath.Dir(cfg.DBPath)); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return err
	}

	logger := newLogger(cfg, db)
	slog.SetDefault(logger)
	logger.Info("starting clubsite",
		"version", buildInfo.String(),
		"env", cfg.Env,
		"addr", cfg.ServerAddr(),
		"mail", cfg.MailEnabled(),
		"sms", cfg.SMSEnabled(),
		"payments", cfg.PaymentsEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Cache backend: Redis when configured, in-process otherwise.
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	var pageCache cache.Cache
	if cfg.UseRedisCache() {
		pageCache, err = cache.NewRedisCache(cfg.RedisURL, cfg.CachePrefix, cacheTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("using redis cache")
	} else {
		pageCache = cache.NewMemoryCache(cacheTTL)
	}
	defer func() { _ = pageCache.Close() }()
	reval := service.NewRevalidation(cache.NewRevalidator(pageCache, cacheTTL))

	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.MailEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}
	var sms notify.SMSSender = notify.NoopSMSSender{}
	if cfg.SMSEnabled() {
		sms = notify.NewHTTPSMSGateway(cfg.SMSEndpoint, cfg.SMSAPIKey, cfg.SMSSender)
	}

	queries := store.New(db)
	audit := service.NewAuditService(queries)
	verifier := verification.NewManager(queries, mailer, sms)

	media, err := service.NewMediaService(cfg.UploadsDir, audit)
	if err != nil {
		return err
	}

	newsletter := service.NewNewsletterService(queries, mailer, audit)

	h := handler.New(handler.Deps{
		DB:       db,
		Logger:   logger,
		AdminSM:  session.NewAdmin(db, cfg.IsDevelopment()),
		UserSM:   session.NewUserManager(cfg.SessionSecret, !cfg.IsDevelopment()),
		Reval:    reval,
		Verifier: verifier,
		Payments: payment.NewClient(cfg.PaymentEndpoint, cfg.PaymentPublicKey, cfg.PaymentSecretKey),

		Users:      service.NewUserService(queries, audit),
		Events:     service.NewEventService(queries, reval, audit),
		Trainings:  service.NewTrainingService(queries, reval, audit),
		Camps:      service.NewCampService(queries, reval, audit),
		Products:   service.NewProductService(queries, reval, audit),
		Orders:     service.NewOrderService(db, audit),
		Enquiries:  service.NewEnquiryService(queries, audit),
		Committee:  service.NewCommitteeService(queries, reval, audit),
		Content:    service.NewContentService(queries, reval, audit),
		Newsletter: newsletter,
		Documents:  service.NewDocumentService(queries, reval, audit),
		Dashboard:  service.NewDashboardService(queries, logger),
		Media:      media,
		Audit:      audit,

		ResetURLBase: strings.TrimRight(cfg.BaseURL, "/") + "/reset-password",
		Version:      buildInfo,
	})

	sched := scheduler.New(verifier, newsletter, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// newLogger builds the application logger. Warnings and errors are
// teed into the audit log table.
func newLogger(cfg *config.Config, db *sql.DB) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var inner slog.Handler
	if cfg.IsDevelopment() {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(logging.NewAuditLogHandler(inner, db))
}
