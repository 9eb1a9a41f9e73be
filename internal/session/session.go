// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds the two session mechanisms: a database-backed
// admin session and a signed stateless cookie for site members.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// AdminCookieName is the admin console session cookie.
const AdminCookieName = "admin_session"

// AdminLifetime is how long an admin login stays valid.
const AdminLifetime = 24 * time.Hour

// NewAdmin creates the admin session manager backed by the sessions
// table.
func NewAdmin(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = AdminLifetime
	sm.Cookie.Name = AdminCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}
