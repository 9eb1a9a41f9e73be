// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// ContentService manages the keyed editable page copy. Values are
// sanitized on write so stored markup is safe to render as-is.
type ContentService struct {
	queries   *store.Queries
	reval     *Revalidation
	audit     *AuditService
	sanitizer *bluemonday.Policy
}

// NewContentService creates a ContentService with a UGC sanitization
// policy.
func NewContentService(queries *store.Queries, reval *Revalidation, audit *AuditService) *ContentService {
	return &ContentService{
		queries:   queries,
		reval:     reval,
		audit:     audit,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Set writes a content value by key, inserting or updating atomically,
// and revalidates the pages backed by the area.
func (s *ContentService) Set(ctx context.Context, area, key, value string) error {
	if key == "" {
		return &ValidationError{Field: "key", Reason: "must not be empty"}
	}
	if area == "" {
		return &ValidationError{Field: "area", Reason: "must not be empty"}
	}

	err := s.queries.UpsertSiteContent(ctx, store.UpsertSiteContentParams{
		ID:    uuid.New().String(),
		Area:  area,
		Key:   key,
		Value: s.sanitizer.Sanitize(value),
		Now:   time.Now(),
	})
	if err != nil {
		return err
	}

	s.reval.Content(ctx, area)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "site content updated",
		map[string]any{"area": area, "key": key})
	return nil
}

// Get fetches a content value by key.
func (s *ContentService) Get(ctx context.Context, key string) (store.SiteContent, error) {
	content, err := s.queries.GetSiteContentByKey(ctx, key)
	if err != nil {
		return store.SiteContent{}, notFound("site content", key, err)
	}
	return content, nil
}

// ListByArea returns the content rows of one page area.
func (s *ContentService) ListByArea(ctx context.Context, area string) ([]store.SiteContent, error) {
	return s.queries.ListSiteContentByArea(ctx, area)
}

// List returns all content rows grouped by area.
func (s *ContentService) List(ctx context.Context) ([]store.SiteContent, error) {
	return s.queries.ListSiteContent(ctx)
}

// AreaMap returns an area's content as a key-to-value map for page
// rendering.
func (s *ContentService) AreaMap(ctx context.Context, area string) (map[string]string, error) {
	rows, err := s.queries.ListSiteContentByArea(ctx, area)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// Delete removes a content key. The pages backed by its area are
// revalidated.
func (s *ContentService) Delete(ctx context.Context, key string) error {
	content, err := s.queries.GetSiteContentByKey(ctx, key)
	if err != nil {
		return notFound("site content", key, err)
	}
	if err := s.queries.DeleteSiteContent(ctx, key); err != nil {
		return err
	}
	s.reval.Content(ctx, content.Area)
	return nil
}
