// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Training is a recurring training programme.
type Training struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	Level       string         `json:"level"`
	Active      bool           `json:"active"`
	FormSchema  sql.NullString `json:"form_schema"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TrainingRegistration is a submitted registration for a training.
type TrainingRegistration struct {
	ID         string    `json:"id"`
	TrainingID string    `json:"training_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Responses  string    `json:"responses"`
	CreatedAt  time.Time `json:"created_at"`
}

const trainingColumns = `id, title, description, duration, level, active, form_schema, created_at, updated_at`

func scanTraining(row interface{ Scan(...any) error }) (Training, error) {
	var t Training
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Duration, &t.Level,
		&t.Active, &t.FormSchema, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const createTraining = `
INSERT INTO trainings (id, title, description, duration, level, active, form_schema, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + trainingColumns

// CreateTrainingParams holds the fields for CreateTraining.
type CreateTrainingParams struct {
	ID          string
	Title       string
	Description string
	Duration    string
	Level       string
	Active      bool
	FormSchema  sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTraining inserts a new training row.
func (q *Queries) CreateTraining(ctx context.Context, arg CreateTrainingParams) (Training, error) {
	row := q.db.QueryRowContext(ctx, createTraining,
		arg.ID, arg.Title, arg.Description, arg.Duration, arg.Level,
		arg.Active, arg.FormSchema, arg.CreatedAt, arg.UpdatedAt)
	return scanTraining(row)
}

const getTrainingByID = `SELECT ` + trainingColumns + ` FROM trainings WHERE id = ?`

// GetTrainingByID fetches a training by id.
func (q *Queries) GetTrainingByID(ctx context.Context, id string) (Training, error) {
	return scanTraining(q.db.QueryRowContext(ctx, getTrainingByID, id))
}

const listTrainings = `SELECT ` + trainingColumns + ` FROM trainings ORDER BY created_at DESC`

const listActiveTrainings = `SELECT ` + trainingColumns + ` FROM trainings WHERE active = 1 ORDER BY created_at DESC`

// ListTrainings returns all trainings, newest first.
func (q *Queries) ListTrainings(ctx context.Context) ([]Training, error) {
	return q.queryTrainings(ctx, listTrainings)
}

// ListActiveTrainings returns trainings open for registration.
func (q *Queries) ListActiveTrainings(ctx context.Context) ([]Training, error) {
	return q.queryTrainings(ctx, listActiveTrainings)
}

func (q *Queries) queryTrainings(ctx context.Context, query string, args ...any) ([]Training, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trainings []Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

const updateTraining = `
UPDATE trainings SET title = ?, description = ?, duration = ?, level = ?,
    active = ?, form_schema = ?, updated_at = ?
WHERE id = ?
RETURNING ` + trainingColumns

// UpdateTrainingParams holds the fields for UpdateTraining.
type UpdateTrainingParams struct {
	Title       string
	Description string
	Duration    string
	Level       string
	Active      bool
	FormSchema  sql.NullString
	UpdatedAt   time.Time
	ID          string
}

// UpdateTraining overwrites a training row.
func (q *Queries) UpdateTraining(ctx context.Context, arg UpdateTrainingParams) (Training, error) {
	row := q.db.QueryRowContext(ctx, updateTraining,
		arg.Title, arg.Description, arg.Duration, arg.Level,
		arg.Active, arg.FormSchema, arg.UpdatedAt, arg.ID)
	return scanTraining(row)
}

const deleteTraining = `DELETE FROM trainings WHERE id = ?`

// DeleteTraining removes a training and its registrations.
func (q *Queries) DeleteTraining(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteTraining, id)
	return err
}

const createTrainingRegistration = `
INSERT INTO training_registrations (id, training_id, name, email, phone, responses, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, training_id, name, email, phone, responses, created_at
`

// CreateTrainingRegistrationParams holds the fields for CreateTrainingRegistration.
type CreateTrainingRegistrationParams struct {
	ID         string
	TrainingID string
	Name       string
	Email      string
	Phone      string
	Responses  string
	CreatedAt  time.Time
}

// CreateTrainingRegistration inserts a registration row.
func (q *Queries) CreateTrainingRegistration(ctx context.Context, arg CreateTrainingRegistrationParams) (TrainingRegistration, error) {
	row := q.db.QueryRowContext(ctx, createTrainingRegistration,
		arg.ID, arg.TrainingID, arg.Name, arg.Email, arg.Phone, arg.Responses, arg.CreatedAt)
	var r TrainingRegistration
	err := row.Scan(&r.ID, &r.TrainingID, &r.Name, &r.Email, &r.Phone, &r.Responses, &r.CreatedAt)
	return r, err
}

const listTrainingRegistrations = `
SELECT id, training_id, name, email, phone, responses, created_at
FROM training_registrations WHERE training_id = ? ORDER BY created_at DESC
`

// ListTrainingRegistrations returns registrations for a training, newest first.
func (q *Queries) ListTrainingRegistrations(ctx context.Context, trainingID string) ([]TrainingRegistration, error) {
	rows, err := q.db.QueryContext(ctx, listTrainingRegistrations, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var regs []TrainingRegistration
	for rows.Next() {
		var r TrainingRegistration
		if err := rows.Scan(&r.ID, &r.TrainingID, &r.Name, &r.Email, &r.Phone, &r.Responses, &r.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}
