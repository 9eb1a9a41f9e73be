// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"
	"time"
)

func TestNullStringFrom(t *testing.T) {
	if ns := NullStringFrom(""); ns.Valid {
		t.Error("empty string should produce invalid NullString")
	}
	ns := NullStringFrom("hello")
	if !ns.Valid || ns.String != "hello" {
		t.Errorf("NullStringFrom = %+v, want valid 'hello'", ns)
	}
}

func TestNullTimeFromPtr(t *testing.T) {
	if nt := NullTimeFromPtr(nil); nt.Valid {
		t.Error("nil pointer should produce invalid NullTime")
	}
	now := time.Now()
	nt := NullTimeFromPtr(&now)
	if !nt.Valid || !nt.Time.Equal(now) {
		t.Errorf("NullTimeFromPtr = %+v, want valid %v", nt, now)
	}
}

func TestTimePtr(t *testing.T) {
	if p := TimePtr(NullTimeFrom(time.Time{})); p != nil {
		t.Error("invalid NullTime should unwrap to nil")
	}
	now := time.Now()
	p := TimePtr(NullTimeFrom(now))
	if p == nil || !p.Equal(now) {
		t.Errorf("TimePtr = %v, want %v", p, now)
	}
}

func TestAbsPath(t *testing.T) {
	if got := AbsPath("/var/data/club.db"); got != "/var/data/club.db" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
	got := AbsPath("./data/club.db")
	if got == "./data/club.db" || got == "" {
		t.Errorf("relative path was not normalized: %q", got)
	}
}
