// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// SiteContent is a keyed piece of editable page copy. The natural key
// is Key; Area groups keys by page section.
type SiteContent struct {
	ID        string    `json:"id"`
	Area      string    `json:"area"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const contentColumns = `id, area, key, value, created_at, updated_at`

func scanSiteContent(row interface{ Scan(...any) error }) (SiteContent, error) {
	var c SiteContent
	err := row.Scan(&c.ID, &c.Area, &c.Key, &c.Value, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// DO NOTHING keeps initialization idempotent: seeding the same key
// twice never overwrites an edited value.
const initSiteContent = `
INSERT INTO site_content (id, area, key, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO NOTHING
`

// InitSiteContentParams holds the fields for InitSiteContent.
type InitSiteContentParams struct {
	ID    string
	Area  string
	Key   string
	Value string
	Now   time.Time
}

// InitSiteContent inserts a content row only if the key is absent.
func (q *Queries) InitSiteContent(ctx context.Context, arg InitSiteContentParams) error {
	_, err := q.db.ExecContext(ctx, initSiteContent,
		arg.ID, arg.Area, arg.Key, arg.Value, arg.Now, arg.Now)
	return err
}

const upsertSiteContent = `
INSERT INTO site_content (id, area, key, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    area = excluded.area,
    value = excluded.value,
    updated_at = excluded.updated_at
`

// UpsertSiteContentParams holds the fields for UpsertSiteContent.
type UpsertSiteContentParams struct {
	ID    string
	Area  string
	Key   string
	Value string
	Now   time.Time
}

// UpsertSiteContent sets a content value, inserting or updating by key
// in a single atomic statement.
func (q *Queries) UpsertSiteContent(ctx context.Context, arg UpsertSiteContentParams) error {
	_, err := q.db.ExecContext(ctx, upsertSiteContent,
		arg.ID, arg.Area, arg.Key, arg.Value, arg.Now, arg.Now)
	return err
}

const getSiteContentByKey = `SELECT ` + contentColumns + ` FROM site_content WHERE key = ?`

// GetSiteContentByKey fetches a content row by key.
func (q *Queries) GetSiteContentByKey(ctx context.Context, key string) (SiteContent, error) {
	return scanSiteContent(q.db.QueryRowContext(ctx, getSiteContentByKey, key))
}

const listSiteContentByArea = `SELECT ` + contentColumns + ` FROM site_content WHERE area = ? ORDER BY key ASC`

const listSiteContent = `SELECT ` + contentColumns + ` FROM site_content ORDER BY area ASC, key ASC`

// ListSiteContentByArea returns content rows for an area.
func (q *Queries) ListSiteContentByArea(ctx context.Context, area string) ([]SiteContent, error) {
	return q.querySiteContent(ctx, listSiteContentByArea, area)
}

// ListSiteContent returns all content rows.
func (q *Queries) ListSiteContent(ctx context.Context) ([]SiteContent, error) {
	return q.querySiteContent(ctx, listSiteContent)
}

func (q *Queries) querySiteContent(ctx context.Context, query string, args ...any) ([]SiteContent, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var content []SiteContent
	for rows.Next() {
		c, err := scanSiteContent(rows)
		if err != nil {
			return nil, err
		}
		content = append(content, c)
	}
	return content, rows.Err()
}

const deleteSiteContent = `DELETE FROM site_content WHERE key = ?`

// DeleteSiteContent removes a content row by key.
func (q *Queries) DeleteSiteContent(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteSiteContent, key)
	return err
}
