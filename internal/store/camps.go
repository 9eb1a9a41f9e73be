// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Camp is a dated training camp.
type Camp struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     sql.NullTime   `json:"end_date"`
	Location    string         `json:"location"`
	Active      bool           `json:"active"`
	FormSchema  sql.NullString `json:"form_schema"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CampRegistration is a submitted registration for a camp.
type CampRegistration struct {
	ID        string    `json:"id"`
	CampID    string    `json:"camp_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Responses string    `json:"responses"`
	CreatedAt time.Time `json:"created_at"`
}

const campColumns = `id, title, description, start_date, end_date, location, active, form_schema, created_at, updated_at`

func scanCamp(row interface{ Scan(...any) error }) (Camp, error) {
	var c Camp
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.StartDate, &c.EndDate,
		&c.Location, &c.Active, &c.FormSchema, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const createCamp = `
INSERT INTO camps (id, title, description, start_date, end_date, location, active, form_schema, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + campColumns

// CreateCampParams holds the fields for CreateCamp.
type CreateCampParams struct {
	ID          string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     sql.NullTime
	Location    string
	Active      bool
	FormSchema  sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateCamp inserts a new camp row.
func (q *Queries) CreateCamp(ctx context.Context, arg CreateCampParams) (Camp, error) {
	row := q.db.QueryRowContext(ctx, createCamp,
		arg.ID, arg.Title, arg.Description, arg.StartDate, arg.EndDate,
		arg.Location, arg.Active, arg.FormSchema, arg.CreatedAt, arg.UpdatedAt)
	return scanCamp(row)
}

const getCampByID = `SELECT ` + campColumns + ` FROM camps WHERE id = ?`

// GetCampByID fetches a camp by id.
func (q *Queries) GetCampByID(ctx context.Context, id string) (Camp, error) {
	return scanCamp(q.db.QueryRowContext(ctx, getCampByID, id))
}

const listCamps = `SELECT ` + campColumns + ` FROM camps ORDER BY start_date DESC`

const listActiveCamps = `SELECT ` + campColumns + ` FROM camps WHERE active = 1 ORDER BY start_date ASC`

// ListCamps returns all camps, latest start date first.
func (q *Queries) ListCamps(ctx context.Context) ([]Camp, error) {
	return q.queryCamps(ctx, listCamps)
}

// ListActiveCamps returns camps open for registration, soonest first.
func (q *Queries) ListActiveCamps(ctx context.Context) ([]Camp, error) {
	return q.queryCamps(ctx, listActiveCamps)
}

func (q *Queries) queryCamps(ctx context.Context, query string, args ...any) ([]Camp, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var camps []Camp
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, c)
	}
	return camps, rows.Err()
}

const updateCamp = `
UPDATE camps SET title = ?, description = ?, start_date = ?, end_date = ?,
    location = ?, active = ?, form_schema = ?, updated_at = ?
WHERE id = ?
RETURNING ` + campColumns

// UpdateCampParams holds the fields for UpdateCamp.
type UpdateCampParams struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     sql.NullTime
	Location    string
	Active      bool
	FormSchema  sql.NullString
	UpdatedAt   time.Time
	ID          string
}

// UpdateCamp overwrites a camp row.
func (q *Queries) UpdateCamp(ctx context.Context, arg UpdateCampParams) (Camp, error) {
	row := q.db.QueryRowContext(ctx, updateCamp,
		arg.Title, arg.Description, arg.StartDate, arg.EndDate,
		arg.Location, arg.Active, arg.FormSchema, arg.UpdatedAt, arg.ID)
	return scanCamp(row)
}

const deleteCamp = `DELETE FROM camps WHERE id = ?`

// DeleteCamp removes a camp and its registrations.
func (q *Queries) DeleteCamp(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteCamp, id)
	return err
}

const createCampRegistration = `
INSERT INTO camp_registrations (id, camp_id, name, email, phone, responses, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, camp_id, name, email, phone, responses, created_at
`

// CreateCampRegistrationParams holds the fields for CreateCampRegistration.
type CreateCampRegistrationParams struct {
	ID        string
	CampID    string
	Name      string
	Email     string
	Phone     string
	Responses string
	CreatedAt time.Time
}

// CreateCampRegistration inserts a registration row.
func (q *Queries) CreateCampRegistration(ctx context.Context, arg CreateCampRegistrationParams) (CampRegistration, error) {
	row := q.db.QueryRowContext(ctx, createCampRegistration,
		arg.ID, arg.CampID, arg.Name, arg.Email, arg.Phone, arg.Responses, arg.CreatedAt)
	var r CampRegistration
	err := row.Scan(&r.ID, &r.CampID, &r.Name, &r.Email, &r.Phone, &r.Responses, &r.CreatedAt)
	return r, err
}

const listCampRegistrations = `
SELECT id, camp_id, name, email, phone, responses, created_at
FROM camp_registrations WHERE camp_id = ? ORDER BY created_at DESC
`

// ListCampRegistrations returns registrations for a camp, newest first.
func (q *Queries) ListCampRegistrations(ctx context.Context, campID string) ([]CampRegistration, error) {
	rows, err := q.db.QueryContext(ctx, listCampRegistrations, campID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var regs []CampRegistration
	for rows.Next() {
		var r CampRegistration
		if err := rows.Scan(&r.ID, &r.CampID, &r.Name, &r.Email, &r.Phone, &r.Responses, &r.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}
