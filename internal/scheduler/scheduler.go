// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: purging
// expired verification codes and reset tokens, and dispatching queued
// newsletter issues.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/verification"
)

// Scheduler owns the cron loop.
type Scheduler struct {
	cron       *cron.Cron
	verifier   *verification.Manager
	newsletter *service.NewsletterService
	logger     *slog.Logger
}

// New creates a scheduler.
func New(verifier *verification.Manager, newsletter *service.NewsletterService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		verifier:   verifier,
		newsletter: newsletter,
		logger:     logger,
	}
}

// Start registers the jobs and begins the cron loop. Expired codes are
// purged every ten minutes; queued newsletters are dispatched every
// minute.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/10 * * * *", s.purgeExpired); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("* * * * *", s.dispatchNewsletters); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeExpired() {
	removed, err := s.verifier.PurgeExpired(context.Background())
	if err != nil {
		s.logger.Error("purging expired verifications failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("purged expired verification records", "count", removed)
	}
}

func (s *Scheduler) dispatchNewsletters() {
	sent, err := s.newsletter.DispatchQueued(context.Background())
	if err != nil {
		s.logger.Error("newsletter dispatch failed", "error", err)
		return
	}
	if sent > 0 {
		s.logger.Info("dispatched queued newsletters", "issues", sent)
	}
}
