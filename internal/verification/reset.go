// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package verification

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/store"
)

// RequestReset issues a password reset token for the email and mails a
// reset link. Re-requesting replaces the previous token. The caller
// verifies the account exists first; issuing for an unknown email is
// harmless but pointless.
func (m *Manager) RequestReset(ctx context.Context, email, resetURLBase string) error {
	if email == "" {
		return &service.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if !m.limiter(email).Allow() {
		return ErrRateLimited
	}

	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}

	now := time.Now()
	if err := m.queries.UpsertPasswordReset(ctx, store.UpsertPasswordResetParams{
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(ResetTokenTTL),
		Now:       now,
	}); err != nil {
		return err
	}

	body := fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href="%s?email=%s&token=%s">Reset your password</a> within the next hour.</p>
<p>If you did not request this, ignore this message.</p>`,
		resetURLBase, email, token)
	if err := m.mailer.Send(ctx, email, "Password reset", body); err != nil {
		return &service.ExternalServiceError{Service: "mail", Err: err}
	}
	return nil
}

// ValidateReset checks a reset token without consuming it. An unknown
// email is a not-found, a stale token an expiry, and a wrong token a
// validation error.
func (m *Manager) ValidateReset(ctx context.Context, email, token string) error {
	record, err := m.queries.GetPasswordReset(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &service.NotFoundError{Entity: "password reset", ID: email}
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		return &service.ExpiredError{What: "password reset token"}
	}
	if subtle.ConstantTimeCompare([]byte(record.Token), []byte(token)) != 1 {
		return &service.ValidationError{Field: "token", Reason: "does not match"}
	}
	return nil
}

// ConsumeReset deletes the reset record after a completed reset so the
// token cannot be replayed.
func (m *Manager) ConsumeReset(ctx context.Context, email string) error {
	return m.queries.DeletePasswordReset(ctx, email)
}
