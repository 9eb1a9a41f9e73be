// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small general-purpose helpers: sql.Null*
// conversions and filesystem path normalization.
package util

import (
	"database/sql"
	"time"
)

// NullStringFrom creates a sql.NullString that is valid only for a
// non-empty string.
func NullStringFrom(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringFromPtr converts a *string into sql.NullString.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr != nil {
		return sql.NullString{String: *ptr, Valid: true}
	}
	return sql.NullString{}
}

// NullTimeFrom creates a sql.NullTime that is valid only for a
// non-zero time.
func NullTimeFrom(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// NullTimeFromPtr converts a *time.Time into sql.NullTime.
func NullTimeFromPtr(ptr *time.Time) sql.NullTime {
	if ptr != nil {
		return sql.NullTime{Time: *ptr, Valid: true}
	}
	return sql.NullTime{}
}

// StringOrEmpty unwraps a sql.NullString, returning "" when invalid.
func StringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// TimePtr unwraps a sql.NullTime into a *time.Time, nil when invalid.
func TimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		t := nt.Time
		return &t
	}
	return nil
}
