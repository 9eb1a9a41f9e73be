// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/notify"
	"github.com/clubarena/clubsite-go/internal/store"
)

// NewsletterService manages subscribers and the draft, queued, sent
// issue lifecycle. Issue bodies are markdown, rendered to HTML at send
// time.
type NewsletterService struct {
	queries  *store.Queries
	mailer   notify.Mailer
	audit    *AuditService
	markdown goldmark.Markdown
}

// NewNewsletterService creates a NewsletterService.
func NewNewsletterService(queries *store.Queries, mailer notify.Mailer, audit *AuditService) *NewsletterService {
	return &NewsletterService{
		queries: queries,
		mailer:  mailer,
		audit:   audit,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Subscribe adds an email to the subscriber list. Subscribing an
// already-subscribed email is a conflict.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (store.NewsletterSubscriber, error) {
	if email == "" {
		return store.NewsletterSubscriber{}, &ValidationError{Field: "email", Reason: "must not be empty"}
	}

	sub, err := s.queries.CreateNewsletterSubscriber(ctx, store.CreateNewsletterSubscriberParams{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return store.NewsletterSubscriber{}, &ConflictError{Entity: "subscriber", Detail: "email already subscribed"}
		}
		return store.NewsletterSubscriber{}, err
	}
	return sub, nil
}

// Unsubscribe removes an email from the subscriber list.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	return s.queries.DeleteNewsletterSubscriber(ctx, email)
}

// Subscribers returns all subscribers, newest first.
func (s *NewsletterService) Subscribers(ctx context.Context) ([]store.NewsletterSubscriber, error) {
	return s.queries.ListNewsletterSubscribers(ctx)
}

// IssueInput holds the editable fields of a newsletter issue.
type IssueInput struct {
	Subject string
	Body    string // markdown
}

func (in *IssueInput) validate() error {
	if in.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "must not be empty"}
	}
	if in.Body == "" {
		return &ValidationError{Field: "body", Reason: "must not be empty"}
	}
	return nil
}

// CreateIssue stores a new draft issue.
func (s *NewsletterService) CreateIssue(ctx context.Context, in IssueInput) (store.NewsletterIssue, error) {
	if err := in.validate(); err != nil {
		return store.NewsletterIssue{}, err
	}

	now := time.Now()
	return s.queries.CreateNewsletterIssue(ctx, store.CreateNewsletterIssueParams{
		ID:        uuid.New().String(),
		Subject:   in.Subject,
		Body:      in.Body,
		Status:    model.NewsletterStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// GetIssue fetches an issue by id.
func (s *NewsletterService) GetIssue(ctx context.Context, id string) (store.NewsletterIssue, error) {
	issue, err := s.queries.GetNewsletterIssueByID(ctx, id)
	if err != nil {
		return store.NewsletterIssue{}, notFound("newsletter issue", id, err)
	}
	return issue, nil
}

// ListIssues returns all issues, newest first.
func (s *NewsletterService) ListIssues(ctx context.Context) ([]store.NewsletterIssue, error) {
	return s.queries.ListNewsletterIssues(ctx)
}

// UpdateIssue edits a draft issue. Queued and sent issues are
// immutable.
func (s *NewsletterService) UpdateIssue(ctx context.Context, id string, in IssueInput) (store.NewsletterIssue, error) {
	if err := in.validate(); err != nil {
		return store.NewsletterIssue{}, err
	}
	issue, err := s.queries.GetNewsletterIssueByID(ctx, id)
	if err != nil {
		return store.NewsletterIssue{}, notFound("newsletter issue", id, err)
	}
	if issue.Status != model.NewsletterStatusDraft {
		return store.NewsletterIssue{}, &ValidationError{Field: "status", Reason: "only draft issues can be edited"}
	}

	return s.queries.UpdateNewsletterIssue(ctx, store.UpdateNewsletterIssueParams{
		Subject:   in.Subject,
		Body:      in.Body,
		Status:    issue.Status,
		UpdatedAt: time.Now(),
		ID:        id,
	})
}

// QueueIssue marks a draft issue for dispatch on the next scheduler
// run.
func (s *NewsletterService) QueueIssue(ctx context.Context, id string) (store.NewsletterIssue, error) {
	issue, err := s.queries.GetNewsletterIssueByID(ctx, id)
	if err != nil {
		return store.NewsletterIssue{}, notFound("newsletter issue", id, err)
	}
	if issue.Status != model.NewsletterStatusDraft {
		return store.NewsletterIssue{}, &ValidationError{Field: "status", Reason: "only draft issues can be queued"}
	}

	return s.queries.UpdateNewsletterIssue(ctx, store.UpdateNewsletterIssueParams{
		Subject:   issue.Subject,
		Body:      issue.Body,
		Status:    model.NewsletterStatusQueued,
		UpdatedAt: time.Now(),
		ID:        id,
	})
}

// DeleteIssue removes an issue.
func (s *NewsletterService) DeleteIssue(ctx context.Context, id string) error {
	if _, err := s.queries.GetNewsletterIssueByID(ctx, id); err != nil {
		return notFound("newsletter issue", id, err)
	}
	return s.queries.DeleteNewsletterIssue(ctx, id)
}

// DispatchQueued sends every queued issue to all subscribers and marks
// each as sent. A delivery failure to one subscriber does not stop the
// rest; the failure count is audited. Returns the number of issues
// dispatched.
func (s *NewsletterService) DispatchQueued(ctx context.Context) (int, error) {
	issues, err := s.queries.ListNewsletterIssuesByStatus(ctx, model.NewsletterStatusQueued)
	if err != nil {
		return 0, err
	}
	if len(issues) == 0 {
		return 0, nil
	}

	subscribers, err := s.queries.ListNewsletterSubscribers(ctx)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, issue := range issues {
		html, err := s.renderBody(issue.Body)
		if err != nil {
			s.audit.Log(ctx, model.AuditLevelError, model.AuditCategorySystem, "newsletter render failed",
				map[string]any{"issue": issue.ID})
			continue
		}

		failures := 0
		for _, sub := range subscribers {
			if err := s.mailer.Send(ctx, sub.Email, issue.Subject, html); err != nil {
				failures++
			}
		}

		if err := s.queries.MarkNewsletterIssueSent(ctx, issue.ID, model.NewsletterStatusSent, time.Now()); err != nil {
			return dispatched, err
		}
		dispatched++

		s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategorySystem, "newsletter dispatched",
			map[string]any{"issue": issue.ID, "recipients": len(subscribers), "failures": failures})
	}
	return dispatched, nil
}

func (s *NewsletterService) renderBody(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
