// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Revalidator implements the site's revalidation primitive on top of a
// Cache. Page data is cached under its page path; mutating data
// actions call Revalidate with the paths whose cached render must be
// recomputed on the next request.
type Revalidator struct {
	cache Cache
	ttl   time.Duration
}

// NewRevalidator wraps a cache backend with path-keyed helpers.
func NewRevalidator(cache Cache, ttl time.Duration) *Revalidator {
	return &Revalidator{cache: cache, ttl: ttl}
}

// Revalidate drops the cached data for each page path. A failed delete
// is logged and skipped: a stale entry expires via TTL anyway.
func (r *Revalidator) Revalidate(ctx context.Context, paths ...string) {
	for _, path := range paths {
		if err := r.cache.Delete(ctx, path); err != nil {
			slog.Warn("cache invalidation failed", "path", path, "error", err)
		}
	}
}

// GetJSON loads the cached value for a page path into dest.
// Returns ErrCacheMiss when the path has no valid entry.
func (r *Revalidator) GetJSON(ctx context.Context, path string, dest any) error {
	raw, err := r.cache.Get(ctx, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON caches a value under a page path. Serialization or storage
// failures are logged, not returned: caching is best-effort.
func (r *Revalidator) SetJSON(ctx context.Context, path string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache serialization failed", "path", path, "error", err)
		return
	}
	if err := r.cache.Set(ctx, path, raw, r.ttl); err != nil {
		slog.Warn("cache store failed", "path", path, "error", err)
	}
}

// Clear drops the entire cache.
func (r *Revalidator) Clear(ctx context.Context) {
	if err := r.cache.Clear(ctx); err != nil {
		slog.Warn("cache clear failed", "error", err)
	}
}
