// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/auth"
)

// Default admin credentials for a fresh install. The password must be
// changed after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

// defaultSiteContent is the initial editable page copy. Existing keys
// are never overwritten (see InitSiteContent).
var defaultSiteContent = []struct {
	Area  string
	Key   string
	Value string
}{
	{"home", "hero.headline", "Train hard. Play harder."},
	{"home", "hero.subline", "Join the club that grows champions."},
	{"home", "about.text", "We are a community sports association offering trainings, camps and events for all ages."},
	{"contact", "contact.email", "hello@example.com"},
	{"contact", "contact.phone", ""},
	{"store", "store.banner", "Official club merchandise"},
}

// Seed creates the fixed admin account and initial site content.
// It is idempotent and safe to run on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)
	now := time.Now()

	_, err := queries.GetAdminByUsername(ctx, DefaultAdminUsername)
	switch {
	case err == nil:
		slog.Debug("admin account already exists, skipping seed")
	case errors.Is(err, sql.ErrNoRows):
		passwordHash, err := auth.HashPassword(DefaultAdminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
			ID:           uuid.New().String(),
			Username:     DefaultAdminUsername,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin account: %w", err)
		}
		slog.Info("created default admin account", "id", admin.ID, "username", admin.Username)
	default:
		return fmt.Errorf("checking for admin account: %w", err)
	}

	for _, c := range defaultSiteContent {
		if err := queries.InitSiteContent(ctx, InitSiteContentParams{
			ID:    uuid.New().String(),
			Area:  c.Area,
			Key:   c.Key,
			Value: c.Value,
			Now:   now,
		}); err != nil {
			return fmt.Errorf("seeding site content %q: %w", c.Key, err)
		}
	}

	return nil
}
