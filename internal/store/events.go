// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Event is a club event with an optional dynamic registration form.
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	EndDate     sql.NullTime   `json:"end_date"`
	Location    string         `json:"location"`
	Status      string         `json:"status"`
	FormSchema  sql.NullString `json:"form_schema"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// EventRegistration is a submitted registration for an event.
type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Responses string    `json:"responses"` // serialized form responses
	CreatedAt time.Time `json:"created_at"`
}

const eventColumns = `id, title, description, date, end_date, location, status, form_schema, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.EndDate,
		&e.Location, &e.Status, &e.FormSchema, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

const createEvent = `
INSERT INTO events (id, title, description, date, end_date, location, status, form_schema, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	EndDate     sql.NullTime
	Location    string
	Status      string
	FormSchema  sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEvent inserts a new event row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.ID, arg.Title, arg.Description, arg.Date, arg.EndDate,
		arg.Location, arg.Status, arg.FormSchema, arg.CreatedAt, arg.UpdatedAt)
	return scanEvent(row)
}

const getEventByID = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

// GetEventByID fetches an event by id.
func (q *Queries) GetEventByID(ctx context.Context, id string) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEventByID, id))
}

const listEvents = `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC`

const listEventsByStatus = `SELECT ` + eventColumns + ` FROM events WHERE status = ? ORDER BY date ASC`

// ListEvents returns all events, most recent date first.
func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	return q.queryEvents(ctx, listEvents)
}

// ListEventsByStatus returns events filtered by status, soonest first.
func (q *Queries) ListEventsByStatus(ctx context.Context, status string) ([]Event, error) {
	return q.queryEvents(ctx, listEventsByStatus, status)
}

const listRecentEvents = `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC LIMIT ?`

// ListRecentEvents returns the most recently created events.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	return q.queryEvents(ctx, listRecentEvents, limit)
}

func (q *Queries) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const updateEvent = `
UPDATE events SET title = ?, description = ?, date = ?, end_date = ?,
    location = ?, status = ?, form_schema = ?, updated_at = ?
WHERE id = ?
RETURNING ` + eventColumns

// UpdateEventParams holds the fields for UpdateEvent.
type UpdateEventParams struct {
	Title       string
	Description string
	Date        time.Time
	EndDate     sql.NullTime
	Location    string
	Status      string
	FormSchema  sql.NullString
	UpdatedAt   time.Time
	ID          string
}

// UpdateEvent overwrites an event row.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, updateEvent,
		arg.Title, arg.Description, arg.Date, arg.EndDate,
		arg.Location, arg.Status, arg.FormSchema, arg.UpdatedAt, arg.ID)
	return scanEvent(row)
}

const deleteEvent = `DELETE FROM events WHERE id = ?`

// DeleteEvent removes an event and, via cascade, its registrations.
func (q *Queries) DeleteEvent(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteEvent, id)
	return err
}

const countEventsByStatus = `SELECT COUNT(*) FROM events WHERE status = ?`

// CountEventsByStatus returns the number of events with the status.
func (q *Queries) CountEventsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEventsByStatus, status).Scan(&n)
	return n, err
}

const createEventRegistration = `
INSERT INTO event_registrations (id, event_id, name, email, phone, responses, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, event_id, name, email, phone, responses, created_at
`

// CreateEventRegistrationParams holds the fields for CreateEventRegistration.
type CreateEventRegistrationParams struct {
	ID        string
	EventID   string
	Name      string
	Email     string
	Phone     string
	Responses string
	CreatedAt time.Time
}

// CreateEventRegistration inserts a registration row.
func (q *Queries) CreateEventRegistration(ctx context.Context, arg CreateEventRegistrationParams) (EventRegistration, error) {
	row := q.db.QueryRowContext(ctx, createEventRegistration,
		arg.ID, arg.EventID, arg.Name, arg.Email, arg.Phone, arg.Responses, arg.CreatedAt)
	var r EventRegistration
	err := row.Scan(&r.ID, &r.EventID, &r.Name, &r.Email, &r.Phone, &r.Responses, &r.CreatedAt)
	return r, err
}

const listEventRegistrations = `
SELECT id, event_id, name, email, phone, responses, created_at
FROM event_registrations WHERE event_id = ? ORDER BY created_at DESC
`

// ListEventRegistrations returns registrations for an event, newest first.
func (q *Queries) ListEventRegistrations(ctx context.Context, eventID string) ([]EventRegistration, error) {
	rows, err := q.db.QueryContext(ctx, listEventRegistrations, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var regs []EventRegistration
	for rows.Next() {
		var r EventRegistration
		if err := rows.Scan(&r.ID, &r.EventID, &r.Name, &r.Email, &r.Phone, &r.Responses, &r.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}
