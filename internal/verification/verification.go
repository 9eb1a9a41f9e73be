// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package verification implements contact verification: short-lived
// numeric codes delivered by SMS or email, a trust window after a
// successful check, and the password reset token flow.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/clubarena/clubsite-go/internal/notify"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/store"
)

// Code and token validity windows.
const (
	PhoneCodeTTL = 10 * time.Minute
	EmailCodeTTL = 15 * time.Minute

	// TrustWindow is how long a verified address stays trusted, so a
	// registration submitted shortly after verification does not need a
	// second code.
	TrustWindow = 30 * time.Minute

	ResetTokenTTL = time.Hour
)

// ErrRateLimited is returned when an address requests codes faster than
// the issuance limit allows.
var ErrRateLimited = errors.New("too many verification requests")

// Manager issues and checks verification codes.
type Manager struct {
	queries *store.Queries
	mailer  notify.Mailer
	sms     notify.SMSSender

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewManager creates a verification Manager.
func NewManager(queries *store.Queries, mailer notify.Mailer, sms notify.SMSSender) *Manager {
	return &Manager{
		queries:  queries,
		mailer:   mailer,
		sms:      sms,
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiter returns the per-address issuance limiter: one code per
// thirty seconds with a small initial burst.
func (m *Manager) limiter(address string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.limiters[address]
	if !ok {
		l = rate.NewLimiter(rate.Every(30*time.Second), 3)
		m.limiters[address] = l
	}
	return l
}

// isEmail distinguishes email addresses from phone numbers.
func isEmail(address string) bool {
	return strings.Contains(address, "@")
}

// Issue generates a six-digit code for the address, stores it
// (replacing any previous code) and dispatches it over the matching
// channel. Email codes live longer than SMS codes.
func (m *Manager) Issue(ctx context.Context, address string) error {
	if address == "" {
		return &service.ValidationError{Field: "address", Reason: "must not be empty"}
	}
	if !m.limiter(address).Allow() {
		return ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	ttl := PhoneCodeTTL
	if isEmail(address) {
		ttl = EmailCodeTTL
	}

	now := time.Now()
	if err := m.queries.UpsertVerification(ctx, store.UpsertVerificationParams{
		Address:   address,
		Code:      code,
		ExpiresAt: now.Add(ttl),
		Now:       now,
	}); err != nil {
		return err
	}

	if isEmail(address) {
		body := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>. It expires in %d minutes.</p>",
			code, int(ttl.Minutes()))
		if err := m.mailer.Send(ctx, address, "Your verification code", body); err != nil {
			return &service.ExternalServiceError{Service: "mail", Err: err}
		}
		return nil
	}

	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))
	if err := m.sms.Send(ctx, address, message); err != nil {
		return &service.ExternalServiceError{Service: "sms", Err: err}
	}
	return nil
}

// Verify checks a submitted code. An unknown address is a not-found, a
// stale code an expiry, and a wrong code a validation error. A
// successful check records the verification time, opening the trust
// window.
func (m *Manager) Verify(ctx context.Context, address, code string) error {
	record, err := m.queries.GetVerification(ctx, address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &service.NotFoundError{Entity: "verification", ID: address}
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		return &service.ExpiredError{What: "verification code"}
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return &service.ValidationError{Field: "code", Reason: "does not match"}
	}

	return m.queries.MarkVerificationVerified(ctx, address, time.Now())
}

// IsTrusted reports whether the address was verified within the trust
// window. Storage errors count as not trusted.
func (m *Manager) IsTrusted(ctx context.Context, address string) bool {
	record, err := m.queries.GetVerification(ctx, address)
	if err != nil {
		return false
	}
	if !record.VerifiedAt.Valid {
		return false
	}
	return time.Since(record.VerifiedAt.Time) < TrustWindow
}

// Clear removes the verification record for an address. Called once a
// registration has consumed the trust window.
func (m *Manager) Clear(ctx context.Context, address string) error {
	return m.queries.DeleteVerification(ctx, address)
}

// PurgeExpired removes unverified codes and stale reset tokens.
// Returns the total rows removed.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	now := time.Now()
	codes, err := m.queries.PurgeExpiredVerifications(ctx, now)
	if err != nil {
		return 0, err
	}
	resets, err := m.queries.PurgeExpiredPasswordResets(ctx, now)
	if err != nil {
		return codes, err
	}
	return codes + resets, nil
}

// generateCode returns a uniformly random six-digit code as a string.
func generateCode() (string, error) {
	// 100000..999999 keeps a fixed six-digit width.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateToken returns a random 32-byte hex token for reset links.
func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
