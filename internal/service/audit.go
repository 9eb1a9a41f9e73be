// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/clubarena/clubsite-go/internal/store"
)

// AuditService writes application events to the audit log table.
// Logging is best-effort: a failed write must never fail the operation
// being audited.
type AuditService struct {
	queries *store.Queries
}

// NewAuditService creates an AuditService.
func NewAuditService(queries *store.Queries) *AuditService {
	return &AuditService{queries: queries}
}

// Log records an audit entry. Metadata is serialized to JSON; a nil map
// is stored as an empty object.
func (s *AuditService) Log(ctx context.Context, level, category, message string, metadata map[string]any) {
	metadataJSON := "{}"
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(raw)
		}
	}

	err := s.queries.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("audit write failed", "category", category, "message", message, "error", err)
	}
}

// Recent returns the newest audit entries, up to limit.
func (s *AuditService) Recent(ctx context.Context, limit int64) ([]store.AuditEntry, error) {
	return s.queries.ListAuditEntries(ctx, limit)
}
