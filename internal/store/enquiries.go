// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Enquiry is a contact-form enquiry.
type Enquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Interest  string    `json:"interest"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const enquiryColumns = `id, name, email, phone, interest, message, status, created_at, updated_at`

func scanEnquiry(row interface{ Scan(...any) error }) (Enquiry, error) {
	var e Enquiry
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Interest,
		&e.Message, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

const createEnquiry = `
INSERT INTO enquiries (id, name, email, phone, interest, message, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + enquiryColumns

// CreateEnquiryParams holds the fields for CreateEnquiry.
type CreateEnquiryParams struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Interest  string
	Message   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateEnquiry inserts an enquiry row.
func (q *Queries) CreateEnquiry(ctx context.Context, arg CreateEnquiryParams) (Enquiry, error) {
	row := q.db.QueryRowContext(ctx, createEnquiry,
		arg.ID, arg.Name, arg.Email, arg.Phone, arg.Interest,
		arg.Message, arg.Status, arg.CreatedAt, arg.UpdatedAt)
	return scanEnquiry(row)
}

const getEnquiryByID = `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = ?`

// GetEnquiryByID fetches an enquiry by id.
func (q *Queries) GetEnquiryByID(ctx context.Context, id string) (Enquiry, error) {
	return scanEnquiry(q.db.QueryRowContext(ctx, getEnquiryByID, id))
}

const listEnquiries = `SELECT ` + enquiryColumns + ` FROM enquiries ORDER BY created_at DESC`

// ListEnquiries returns all enquiries, newest first.
func (q *Queries) ListEnquiries(ctx context.Context) ([]Enquiry, error) {
	return q.queryEnquiries(ctx, listEnquiries)
}

const listRecentEnquiries = `SELECT ` + enquiryColumns + ` FROM enquiries ORDER BY created_at DESC LIMIT ?`

// ListRecentEnquiries returns the most recent enquiries.
func (q *Queries) ListRecentEnquiries(ctx context.Context, limit int64) ([]Enquiry, error) {
	return q.queryEnquiries(ctx, listRecentEnquiries, limit)
}

func (q *Queries) queryEnquiries(ctx context.Context, query string, args ...any) ([]Enquiry, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var enquiries []Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}

const updateEnquiryStatus = `
UPDATE enquiries SET status = ?, updated_at = ? WHERE id = ?
RETURNING ` + enquiryColumns

// UpdateEnquiryStatusParams holds the fields for UpdateEnquiryStatus.
type UpdateEnquiryStatusParams struct {
	Status    string
	UpdatedAt time.Time
	ID        string
}

// UpdateEnquiryStatus changes the enquiry status.
func (q *Queries) UpdateEnquiryStatus(ctx context.Context, arg UpdateEnquiryStatusParams) (Enquiry, error) {
	return scanEnquiry(q.db.QueryRowContext(ctx, updateEnquiryStatus, arg.Status, arg.UpdatedAt, arg.ID))
}

const deleteEnquiry = `DELETE FROM enquiries WHERE id = ?`

// DeleteEnquiry removes an enquiry row.
func (q *Queries) DeleteEnquiry(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteEnquiry, id)
	return err
}

const countEnquiries = `SELECT COUNT(*) FROM enquiries`

// CountEnquiries returns the number of enquiries.
func (q *Queries) CountEnquiries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEnquiries).Scan(&n)
	return n, err
}
