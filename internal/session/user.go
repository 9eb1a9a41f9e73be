// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserCookieName is the member session cookie.
const UserCookieName = "session"

// UserLifetime is how long a member login stays valid.
const UserLifetime = 7 * 24 * time.Hour

// ErrNoSession is returned when the request carries no valid member
// session.
var ErrNoSession = errors.New("no session")

// UserClaims is the signed payload of a member session token.
type UserClaims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserManager issues and reads the stateless member session cookie.
// Tokens are HMAC-signed; nothing is stored server side, so a member
// session survives restarts and scales without shared state.
type UserManager struct {
	secret []byte
	secure bool
}

// NewUserManager creates a UserManager. The secret signs session
// tokens; secure controls the cookie's Secure flag.
func NewUserManager(secret string, secure bool) *UserManager {
	return &UserManager{secret: []byte(secret), secure: secure}
}

// SetSession writes a fresh session cookie for the user.
func (m *UserManager) SetSession(w http.ResponseWriter, userID, name, email string) error {
	now := time.Now()
	claims := UserClaims{
		UserID: userID,
		Name:   name,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(UserLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     UserCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(UserLifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetSession reads and validates the session cookie. A missing,
// malformed or expired cookie yields ErrNoSession.
func (m *UserManager) GetSession(r *http.Request) (UserClaims, error) {
	cookie, err := r.Cookie(UserCookieName)
	if err != nil {
		return UserClaims{}, ErrNoSession
	}

	var claims UserClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return UserClaims{}, ErrNoSession
	}
	return claims, nil
}

// DeleteSession expires the session cookie.
func (m *UserManager) DeleteSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     UserCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
