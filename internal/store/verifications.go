// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Verification is a short-lived numeric code keyed by contact address
// (phone number or email). One row per address; re-issuing overwrites.
type Verification struct {
	Address    string
	Code       string
	ExpiresAt  time.Time
	VerifiedAt sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// A single atomic upsert closes the read-then-write race on re-issue:
// the previous code, expiry and verified flag are replaced in one
// statement.
const upsertVerification = `
INSERT INTO verifications (address, code, expires_at, verified_at, created_at, updated_at)
VALUES (?, ?, ?, NULL, ?, ?)
ON CONFLICT(address) DO UPDATE SET
    code = excluded.code,
    expires_at = excluded.expires_at,
    verified_at = NULL,
    updated_at = excluded.updated_at
`

// UpsertVerificationParams holds the fields for UpsertVerification.
type UpsertVerificationParams struct {
	Address   string
	Code      string
	ExpiresAt time.Time
	Now       time.Time
}

// UpsertVerification stores a freshly issued code for the address,
// replacing any previous record.
func (q *Queries) UpsertVerification(ctx context.Context, arg UpsertVerificationParams) error {
	_, err := q.db.ExecContext(ctx, upsertVerification,
		arg.Address, arg.Code, arg.ExpiresAt, arg.Now, arg.Now)
	return err
}

const getVerification = `
SELECT address, code, expires_at, verified_at, created_at, updated_at
FROM verifications WHERE address = ?
`

// GetVerification fetches the verification record for an address.
func (q *Queries) GetVerification(ctx context.Context, address string) (Verification, error) {
	row := q.db.QueryRowContext(ctx, getVerification, address)
	var v Verification
	err := row.Scan(&v.Address, &v.Code, &v.ExpiresAt, &v.VerifiedAt, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

const markVerificationVerified = `
UPDATE verifications SET verified_at = ?, updated_at = ? WHERE address = ?
`

// MarkVerificationVerified records a successful code check. The row is
// kept so a later trust-window check can pass without re-verifying.
func (q *Queries) MarkVerificationVerified(ctx context.Context, address string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, markVerificationVerified, now, now, address)
	return err
}

const deleteVerification = `DELETE FROM verifications WHERE address = ?`

// DeleteVerification removes the record for an address. Deleting an
// absent record is not an error.
func (q *Queries) DeleteVerification(ctx context.Context, address string) error {
	_, err := q.db.ExecContext(ctx, deleteVerification, address)
	return err
}

const purgeExpiredVerifications = `
DELETE FROM verifications WHERE expires_at < ? AND verified_at IS NULL
`

// PurgeExpiredVerifications removes unverified codes past their expiry.
// Returns the number of rows removed.
func (q *Queries) PurgeExpiredVerifications(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, purgeExpiredVerifications, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PasswordReset is a reset token keyed by email, deleted on use.
type PasswordReset struct {
	Email     string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

const upsertPasswordReset = `
INSERT INTO password_resets (email, token, expires_at, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(email) DO UPDATE SET
    token = excluded.token,
    expires_at = excluded.expires_at,
    created_at = excluded.created_at
`

// UpsertPasswordResetParams holds the fields for UpsertPasswordReset.
type UpsertPasswordResetParams struct {
	Email     string
	Token     string
	ExpiresAt time.Time
	Now       time.Time
}

// UpsertPasswordReset stores a fresh reset token for the email.
func (q *Queries) UpsertPasswordReset(ctx context.Context, arg UpsertPasswordResetParams) error {
	_, err := q.db.ExecContext(ctx, upsertPasswordReset,
		arg.Email, arg.Token, arg.ExpiresAt, arg.Now)
	return err
}

const getPasswordReset = `
SELECT email, token, expires_at, created_at FROM password_resets WHERE email = ?
`

// GetPasswordReset fetches the reset record for an email.
func (q *Queries) GetPasswordReset(ctx context.Context, email string) (PasswordReset, error) {
	row := q.db.QueryRowContext(ctx, getPasswordReset, email)
	var p PasswordReset
	err := row.Scan(&p.Email, &p.Token, &p.ExpiresAt, &p.CreatedAt)
	return p, err
}

const deletePasswordReset = `DELETE FROM password_resets WHERE email = ?`

// DeletePasswordReset removes the reset record for an email.
func (q *Queries) DeletePasswordReset(ctx context.Context, email string) error {
	_, err := q.db.ExecContext(ctx, deletePasswordReset, email)
	return err
}

const purgeExpiredPasswordResets = `DELETE FROM password_resets WHERE expires_at < ?`

// PurgeExpiredPasswordResets removes reset tokens past their expiry.
func (q *Queries) PurgeExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, purgeExpiredPasswordResets, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
