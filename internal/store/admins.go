// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Admin represents a console administrator. Admins are seeded, not
// self-registering.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const createAdmin = `
INSERT INTO admins (id, username, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, username, password_hash, created_at, updated_at
`

// CreateAdminParams holds the fields for CreateAdmin.
type CreateAdminParams struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAdmin inserts a new admin row.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (Admin, error) {
	row := q.db.QueryRowContext(ctx, createAdmin,
		arg.ID, arg.Username, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const getAdminByUsername = `
SELECT id, username, password_hash, created_at, updated_at
FROM admins WHERE username = ?
`

// GetAdminByUsername fetches an admin by username.
func (q *Queries) GetAdminByUsername(ctx context.Context, username string) (Admin, error) {
	row := q.db.QueryRowContext(ctx, getAdminByUsername, username)
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const getAdminByID = `
SELECT id, username, password_hash, created_at, updated_at
FROM admins WHERE id = ?
`

// GetAdminByID fetches an admin by id.
func (q *Queries) GetAdminByID(ctx context.Context, id string) (Admin, error) {
	row := q.db.QueryRowContext(ctx, getAdminByID, id)
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const updateAdminPassword = `
UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?
`

// UpdateAdminPasswordParams holds the fields for UpdateAdminPassword.
type UpdateAdminPasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           string
}

// UpdateAdminPassword overwrites an admin's password hash.
func (q *Queries) UpdateAdminPassword(ctx context.Context, arg UpdateAdminPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}
