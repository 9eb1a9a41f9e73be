// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the page-data cache backing the site's
// revalidation primitive: public reads are served from cache keyed by
// page path, and mutating data actions invalidate the paths whose
// rendered data they affect.
package cache

import (
	"context"
	"time"
)

// Cache is the interface shared by the in-memory and Redis backends.
// Implementations must be safe for concurrent use. Values are []byte
// so both backends can store serialized page data.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss if absent/expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL (0 means the default TTL).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
