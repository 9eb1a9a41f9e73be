// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/clubarena/clubsite-go/internal/cache"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/testutil"
)

// testEnv bundles the shared fixtures of the service tests.
type testEnv struct {
	db      *sql.DB
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

func testLogger() *slog.Logger {
	return testutil.TestLogger()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	queries := store.New(db)

	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { mem.Close() })

	return &testEnv{
		db:      db,
		queries: queries,
		reval:   NewRevalidation(cache.NewRevalidator(mem, time.Minute)),
		audit:   NewAuditService(queries),
	}
}

// captureMailer records sent mail for assertions.
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedMail
}

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *captureMailer) all() []capturedMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]capturedMail(nil), m.sent...)
}
