// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the admin routing
// gate and member session loading.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/clubarena/clubsite-go/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser carries the member session claims.
const ContextKeyUser ContextKey = "user"

// SessionKeyAdminID is the admin session key holding the logged-in
// admin's id.
const SessionKeyAdminID = "admin_id"

// Admin routes used by the gate.
const (
	AdminLoginPath     = "/admin/login"
	AdminDashboardPath = "/admin"
)

// AdminGate routes admin traffic by session state: an unauthenticated
// request to the admin area is redirected to the login page, and an
// authenticated request to the login page is redirected to the
// dashboard. Everything else passes through.
func AdminGate(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loggedIn := sm.GetString(r.Context(), SessionKeyAdminID) != ""
			onLoginPage := r.URL.Path == AdminLoginPath

			switch {
			case !loggedIn && !onLoginPage:
				http.Redirect(w, r, AdminLoginPath, http.StatusSeeOther)
			case loggedIn && onLoginPage:
				http.Redirect(w, r, AdminDashboardPath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireUser rejects requests without a valid member session and puts
// the session claims on the context.
func RequireUser(um *session.UserManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := um.GetSession(r)
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadUser puts member session claims on the context when present but
// lets anonymous requests through. Pages that render differently for
// logged-in members use this.
func LoadUser(um *session.UserManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := um.GetSession(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the member claims set by RequireUser or
// LoadUser.
func UserFromContext(ctx context.Context) (session.UserClaims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(session.UserClaims)
	return claims, ok
}
