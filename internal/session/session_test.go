// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubarena/clubsite-go/internal/testutil"
)

func TestNewAdmin(t *testing.T) {
	db := testutil.TestDB(t)

	sm := NewAdmin(db, true)

	if sm.Cookie.Name != AdminCookieName {
		t.Errorf("cookie name = %q, want %q", sm.Cookie.Name, AdminCookieName)
	}
	if sm.Lifetime != AdminLifetime {
		t.Errorf("lifetime = %v, want %v", sm.Lifetime, AdminLifetime)
	}
	if sm.Cookie.Secure {
		t.Error("dev mode cookie should not be Secure")
	}
}

func TestNewAdmin_Production(t *testing.T) {
	db := testutil.TestDB(t)

	sm := NewAdmin(db, false)

	if !sm.Cookie.Secure {
		t.Error("production cookie should be Secure")
	}
}

func TestUserSession_RoundTrip(t *testing.T) {
	m := NewUserManager("test-secret", false)

	rec := httptest.NewRecorder()
	if err := m.SetSession(rec, "user-1", "Ada", "member@example.com"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != UserCookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, UserCookieName)
	}
	if !cookie.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	claims, err := m.GetSession(req)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "member@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "member@example.com")
	}
}

func TestUserSession_MissingCookie(t *testing.T) {
	m := NewUserManager("test-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.GetSession(req); err != ErrNoSession {
		t.Errorf("GetSession without cookie error = %v, want ErrNoSession", err)
	}
}

func TestUserSession_TamperedToken(t *testing.T) {
	m := NewUserManager("test-secret", false)
	other := NewUserManager("other-secret", false)

	rec := httptest.NewRecorder()
	if err := other.SetSession(rec, "user-1", "Ada", "member@example.com"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	if _, err := m.GetSession(req); err != ErrNoSession {
		t.Errorf("GetSession with foreign signature error = %v, want ErrNoSession", err)
	}
}

func TestUserSession_Delete(t *testing.T) {
	m := NewUserManager("test-secret", false)

	rec := httptest.NewRecorder()
	m.DeleteSession(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", cookies[0].MaxAge)
	}
}
