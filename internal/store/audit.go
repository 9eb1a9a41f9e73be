// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// AuditEntry is a row in the audit log.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"` // JSON string
	CreatedAt time.Time `json:"created_at"`
}

const createAuditEntry = `
INSERT INTO audit_log (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateAuditEntryParams holds the fields for CreateAuditEntry.
type CreateAuditEntryParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateAuditEntry inserts an audit log row.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) error {
	_, err := q.db.ExecContext(ctx, createAuditEntry,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt)
	return err
}

const listAuditEntries = `
SELECT id, level, category, message, metadata, created_at
FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?
`

// ListAuditEntries returns the most recent audit rows.
func (q *Queries) ListAuditEntries(ctx context.Context, limit int64) ([]AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx, listAuditEntries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
