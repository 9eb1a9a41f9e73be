// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/testutil"
)

// discardHandler is a slog.Handler that discards all records.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestAuditLogHandler_ForwardsWarnings(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewAuditLogHandler(discardHandler{}, db))

	logger.Warn("cache invalidation failed", "path", "/events")

	entries, err := store.New(db).ListAuditEntries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Level != model.AuditLevelWarning {
		t.Errorf("Level = %q, want %q", entry.Level, model.AuditLevelWarning)
	}
	if entry.Message != "cache invalidation failed" {
		t.Errorf("Message = %q", entry.Message)
	}
}

func TestAuditLogHandler_SkipsInfo(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewAuditLogHandler(discardHandler{}, db))

	logger.Info("server starting", "addr", ":8080")

	entries, err := store.New(db).ListAuditEntries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d audit entries, want 0", len(entries))
	}
}

func TestAuditLogHandler_CategoryAttribute(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewAuditLogHandler(discardHandler{}, db))

	logger.Error("payment gateway unreachable", "category", model.AuditCategoryCommerce)

	entries, err := store.New(db).ListAuditEntries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(entries))
	}
	if entries[0].Category != model.AuditCategoryCommerce {
		t.Errorf("Category = %q, want %q", entries[0].Category, model.AuditCategoryCommerce)
	}
	if entries[0].Level != model.AuditLevelError {
		t.Errorf("Level = %q, want %q", entries[0].Level, model.AuditLevelError)
	}
}

func TestAuditLogHandler_InferredCategory(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewAuditLogHandler(discardHandler{}, db))

	logger.Warn("failed login attempt")

	entries, err := store.New(db).ListAuditEntries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(entries))
	}
	if entries[0].Category != model.AuditCategoryAuth {
		t.Errorf("Category = %q, want %q", entries[0].Category, model.AuditCategoryAuth)
	}
}
