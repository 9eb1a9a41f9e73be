// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that tees WARN and ERROR
// records into the audit log table, so operational problems show up in
// the admin console alongside application audit events.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// AuditLogHandler wraps another slog.Handler and additionally writes
// records at or above a threshold level to the audit log.
type AuditLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewAuditLogHandler creates a handler forwarding WARN and above to
// the audit log.
func NewAuditLogHandler(inner slog.Handler, db *sql.DB) *AuditLogHandler {
	return &AuditLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *AuditLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeAuditEntry(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *AuditLogHandler) WithGroup(name string) slog.Handler {
	return &AuditLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

// writeAuditEntry stores a record in the audit log. A background
// context is used so the entry lands even when the request context is
// already cancelled. Write failures are swallowed; the record was
// already emitted by the inner handler.
func (h *AuditLogHandler) writeAuditEntry(r slog.Record) {
	_ = h.queries.CreateAuditEntry(context.Background(), store.CreateAuditEntryParams{
		Level:     auditLevel(r.Level),
		Category:  auditCategory(r),
		Message:   r.Message,
		Metadata:  attrsJSON(r),
		CreatedAt: r.Time,
	})
}

func auditLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.AuditLevelError
	case level >= slog.LevelWarn:
		return model.AuditLevelWarning
	default:
		return model.AuditLevelInfo
	}
}

// auditCategory reads a "category" attribute when present and falls
// back to inferring from the message.
func auditCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "auth") || strings.Contains(msg, "session"):
		return model.AuditCategoryAuth
	case strings.Contains(msg, "order") || strings.Contains(msg, "payment") || strings.Contains(msg, "product"):
		return model.AuditCategoryCommerce
	case strings.Contains(msg, "content") || strings.Contains(msg, "page"):
		return model.AuditCategoryContent
	default:
		return model.AuditCategorySystem
	}
}

// attrsJSON serializes record attributes, minus the category, into a
// JSON object of string values.
func attrsJSON(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}
	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})
	raw, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
