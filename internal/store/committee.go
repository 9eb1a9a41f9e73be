// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CommitteeMember is an association committee member card.
type CommitteeMember struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const committeeColumns = `id, name, position, image, category, description, display_order, created_at, updated_at`

func scanCommitteeMember(row interface{ Scan(...any) error }) (CommitteeMember, error) {
	var m CommitteeMember
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Image, &m.Category,
		&m.Description, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const createCommitteeMember = `
INSERT INTO committee_members (id, name, position, image, category, description, display_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + committeeColumns

// CreateCommitteeMemberParams holds the fields for CreateCommitteeMember.
type CreateCommitteeMemberParams struct {
	ID           string
	Name         string
	Position     string
	Image        string
	Category     string
	Description  string
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateCommitteeMember inserts a committee member row.
func (q *Queries) CreateCommitteeMember(ctx context.Context, arg CreateCommitteeMemberParams) (CommitteeMember, error) {
	row := q.db.QueryRowContext(ctx, createCommitteeMember,
		arg.ID, arg.Name, arg.Position, arg.Image, arg.Category,
		arg.Description, arg.DisplayOrder, arg.CreatedAt, arg.UpdatedAt)
	return scanCommitteeMember(row)
}

const getCommitteeMemberByID = `SELECT ` + committeeColumns + ` FROM committee_members WHERE id = ?`

// GetCommitteeMemberByID fetches a committee member by id.
func (q *Queries) GetCommitteeMemberByID(ctx context.Context, id string) (CommitteeMember, error) {
	return scanCommitteeMember(q.db.QueryRowContext(ctx, getCommitteeMemberByID, id))
}

// Explicit display order ascending, creation time descending breaks ties.
const listCommitteeMembers = `
SELECT ` + committeeColumns + ` FROM committee_members
ORDER BY display_order ASC, created_at DESC
`

// ListCommitteeMembers returns all members in display order.
func (q *Queries) ListCommitteeMembers(ctx context.Context) ([]CommitteeMember, error) {
	rows, err := q.db.QueryContext(ctx, listCommitteeMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []CommitteeMember
	for rows.Next() {
		m, err := scanCommitteeMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

const updateCommitteeMember = `
UPDATE committee_members SET name = ?, position = ?, image = ?, category = ?,
    description = ?, display_order = ?, updated_at = ?
WHERE id = ?
RETURNING ` + committeeColumns

// UpdateCommitteeMemberParams holds the fields for UpdateCommitteeMember.
type UpdateCommitteeMemberParams struct {
	Name         string
	Position     string
	Image        string
	Category     string
	Description  string
	DisplayOrder int64
	UpdatedAt    time.Time
	ID           string
}

// UpdateCommitteeMember overwrites a committee member row.
func (q *Queries) UpdateCommitteeMember(ctx context.Context, arg UpdateCommitteeMemberParams) (CommitteeMember, error) {
	row := q.db.QueryRowContext(ctx, updateCommitteeMember,
		arg.Name, arg.Position, arg.Image, arg.Category,
		arg.Description, arg.DisplayOrder, arg.UpdatedAt, arg.ID)
	return scanCommitteeMember(row)
}

const deleteCommitteeMember = `DELETE FROM committee_members WHERE id = ?`

// DeleteCommitteeMember removes a committee member row.
func (q *Queries) DeleteCommitteeMember(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteCommitteeMember, id)
	return err
}
