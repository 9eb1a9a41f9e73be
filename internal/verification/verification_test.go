// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package verification

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/clubarena/clubsite-go/internal/notify"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/testutil"
)

// captureMailer records sent messages for assertions.
type captureMailer struct {
	to      []string
	subject []string
	body    []string
}

func (m *captureMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	m.body = append(m.body, htmlBody)
	return nil
}

type captureSMS struct {
	to      []string
	message []string
}

func (s *captureSMS) Send(_ context.Context, phone, message string) error {
	s.to = append(s.to, phone)
	s.message = append(s.message, message)
	return nil
}

var codePattern = regexp.MustCompile(`\d{6}`)

func testManager(t *testing.T) (*Manager, *captureMailer, *captureSMS) {
	t.Helper()
	db := testutil.TestDB(t)
	mailer := &captureMailer{}
	sms := &captureSMS{}
	return NewManager(store.New(db), mailer, sms), mailer, sms
}

func TestIssueAndVerify_Email(t *testing.T) {
	m, mailer, _ := testManager(t)
	ctx := context.Background()
	const address = "member@example.com"

	if err := m.Issue(ctx, address); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(mailer.body) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.body))
	}
	code := codePattern.FindString(mailer.body[0])
	if len(code) != 6 {
		t.Fatalf("no six-digit code in mail body")
	}

	var verr *service.ValidationError
	if err := m.Verify(ctx, address, "000000"); !errors.As(err, &verr) {
		t.Errorf("Verify with wrong code error = %v, want ValidationError", err)
	}
	if err := m.Verify(ctx, address, code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !m.IsTrusted(ctx, address) {
		t.Error("address not trusted after successful verification")
	}

	if err := m.Clear(ctx, address); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.IsTrusted(ctx, address) {
		t.Error("address still trusted after Clear")
	}
}

func TestIssue_Phone(t *testing.T) {
	m, _, sms := testManager(t)
	ctx := context.Background()

	if err := m.Issue(ctx, "+40712345678"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(sms.message) != 1 {
		t.Fatalf("sent %d SMS, want 1", len(sms.message))
	}
	if codePattern.FindString(sms.message[0]) == "" {
		t.Error("no six-digit code in SMS")
	}
}

func TestVerify_UnknownAddress(t *testing.T) {
	m, _, _ := testManager(t)

	var nf *service.NotFoundError
	if err := m.Verify(context.Background(), "nobody@example.com", "123456"); !errors.As(err, &nf) {
		t.Errorf("Verify unknown address error = %v, want NotFoundError", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	db := testutil.TestDB(t)
	queries := store.New(db)
	m := NewManager(queries, &captureMailer{}, &captureSMS{})
	ctx := context.Background()
	const address = "stale@example.com"

	past := time.Now().Add(-time.Minute)
	if err := queries.UpsertVerification(ctx, store.UpsertVerificationParams{
		Address:   address,
		Code:      "123456",
		ExpiresAt: past,
		Now:       past.Add(-EmailCodeTTL),
	}); err != nil {
		t.Fatalf("UpsertVerification: %v", err)
	}

	var exp *service.ExpiredError
	if err := m.Verify(ctx, address, "123456"); !errors.As(err, &exp) {
		t.Errorf("Verify expired code error = %v, want ExpiredError", err)
	}
}

func TestIsTrusted_WindowClosed(t *testing.T) {
	db := testutil.TestDB(t)
	queries := store.New(db)
	m := NewManager(queries, &captureMailer{}, &captureSMS{})
	ctx := context.Background()
	const address = "old@example.com"

	now := time.Now()
	if err := queries.UpsertVerification(ctx, store.UpsertVerificationParams{
		Address:   address,
		Code:      "123456",
		ExpiresAt: now.Add(EmailCodeTTL),
		Now:       now,
	}); err != nil {
		t.Fatalf("UpsertVerification: %v", err)
	}
	// Verified exactly one trust window ago: the window is half-open,
	// so trust ends at the boundary.
	if err := queries.MarkVerificationVerified(ctx, address, now.Add(-TrustWindow)); err != nil {
		t.Fatalf("MarkVerificationVerified: %v", err)
	}

	if m.IsTrusted(ctx, address) {
		t.Error("address trusted at the trust window boundary")
	}
}

func TestIssue_RateLimited(t *testing.T) {
	m, _, _ := testManager(t)
	ctx := context.Background()
	const address = "burst@example.com"

	for i := 0; i < 3; i++ {
		if err := m.Issue(ctx, address); err != nil {
			t.Fatalf("Issue %d: %v", i, err)
		}
	}
	if err := m.Issue(ctx, address); !errors.Is(err, ErrRateLimited) {
		t.Errorf("fourth Issue error = %v, want ErrRateLimited", err)
	}
}

func TestResetFlow(t *testing.T) {
	m, mailer, _ := testManager(t)
	ctx := context.Background()
	const email = "reset@example.com"

	if err := m.RequestReset(ctx, email, "https://club.example.com/reset"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	if len(mailer.body) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.body))
	}
	match := regexp.MustCompile(`token=([0-9a-f]{64})`).FindStringSubmatch(mailer.body[0])
	if match == nil {
		t.Fatalf("no reset token in mail body")
	}
	token := match[1]

	var verr *service.ValidationError
	if err := m.ValidateReset(ctx, email, "wrong"); !errors.As(err, &verr) {
		t.Errorf("ValidateReset with wrong token error = %v, want ValidationError", err)
	}
	if err := m.ValidateReset(ctx, email, token); err != nil {
		t.Fatalf("ValidateReset: %v", err)
	}

	if err := m.ConsumeReset(ctx, email); err != nil {
		t.Fatalf("ConsumeReset: %v", err)
	}
	var nf *service.NotFoundError
	if err := m.ValidateReset(ctx, email, token); !errors.As(err, &nf) {
		t.Errorf("ValidateReset after consume error = %v, want NotFoundError", err)
	}
}

var _ notify.Mailer = (*captureMailer)(nil)
var _ notify.SMSSender = (*captureSMS)(nil)
