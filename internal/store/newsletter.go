// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// NewsletterSubscriber is a subscribed email address.
type NewsletterSubscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsletterIssue is a newsletter with a draft -> queued -> sent
// lifecycle. The body is markdown, rendered to HTML at send time.
type NewsletterIssue struct {
	ID        string       `json:"id"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body"`
	Status    string       `json:"status"`
	SentAt    sql.NullTime `json:"sent_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

const createNewsletterSubscriber = `
INSERT INTO newsletter_subscribers (id, email, created_at)
VALUES (?, ?, ?)
RETURNING id, email, created_at
`

// CreateNewsletterSubscriberParams holds the fields for CreateNewsletterSubscriber.
type CreateNewsletterSubscriberParams struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// CreateNewsletterSubscriber inserts a subscriber row. A duplicate
// email violates the unique constraint.
func (q *Queries) CreateNewsletterSubscriber(ctx context.Context, arg CreateNewsletterSubscriberParams) (NewsletterSubscriber, error) {
	row := q.db.QueryRowContext(ctx, createNewsletterSubscriber, arg.ID, arg.Email, arg.CreatedAt)
	var s NewsletterSubscriber
	err := row.Scan(&s.ID, &s.Email, &s.CreatedAt)
	return s, err
}

const listNewsletterSubscribers = `
SELECT id, email, created_at FROM newsletter_subscribers ORDER BY created_at DESC
`

// ListNewsletterSubscribers returns all subscribers, newest first.
func (q *Queries) ListNewsletterSubscribers(ctx context.Context) ([]NewsletterSubscriber, error) {
	rows, err := q.db.QueryContext(ctx, listNewsletterSubscribers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []NewsletterSubscriber
	for rows.Next() {
		var s NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

const deleteNewsletterSubscriber = `DELETE FROM newsletter_subscribers WHERE email = ?`

// DeleteNewsletterSubscriber removes a subscriber by email.
func (q *Queries) DeleteNewsletterSubscriber(ctx context.Context, email string) error {
	_, err := q.db.ExecContext(ctx, deleteNewsletterSubscriber, email)
	return err
}

const issueColumns = `id, subject, body, status, sent_at, created_at, updated_at`

func scanNewsletterIssue(row interface{ Scan(...any) error }) (NewsletterIssue, error) {
	var n NewsletterIssue
	err := row.Scan(&n.ID, &n.Subject, &n.Body, &n.Status, &n.SentAt, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

const createNewsletterIssue = `
INSERT INTO newsletter_issues (id, subject, body, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + issueColumns

// CreateNewsletterIssueParams holds the fields for CreateNewsletterIssue.
type CreateNewsletterIssueParams struct {
	ID        string
	Subject   string
	Body      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateNewsletterIssue inserts an issue row.
func (q *Queries) CreateNewsletterIssue(ctx context.Context, arg CreateNewsletterIssueParams) (NewsletterIssue, error) {
	row := q.db.QueryRowContext(ctx, createNewsletterIssue,
		arg.ID, arg.Subject, arg.Body, arg.Status, arg.CreatedAt, arg.UpdatedAt)
	return scanNewsletterIssue(row)
}

const getNewsletterIssueByID = `SELECT ` + issueColumns + ` FROM newsletter_issues WHERE id = ?`

// GetNewsletterIssueByID fetches an issue by id.
func (q *Queries) GetNewsletterIssueByID(ctx context.Context, id string) (NewsletterIssue, error) {
	return scanNewsletterIssue(q.db.QueryRowContext(ctx, getNewsletterIssueByID, id))
}

const listNewsletterIssues = `SELECT ` + issueColumns + ` FROM newsletter_issues ORDER BY created_at DESC`

const listNewsletterIssuesByStatus = `SELECT ` + issueColumns + ` FROM newsletter_issues WHERE status = ? ORDER BY created_at ASC`

// ListNewsletterIssues returns all issues, newest first.
func (q *Queries) ListNewsletterIssues(ctx context.Context) ([]NewsletterIssue, error) {
	return q.queryNewsletterIssues(ctx, listNewsletterIssues)
}

// ListNewsletterIssuesByStatus returns issues with the status, oldest first.
func (q *Queries) ListNewsletterIssuesByStatus(ctx context.Context, status string) ([]NewsletterIssue, error) {
	return q.queryNewsletterIssues(ctx, listNewsletterIssuesByStatus, status)
}

func (q *Queries) queryNewsletterIssues(ctx context.Context, query string, args ...any) ([]NewsletterIssue, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var issues []NewsletterIssue
	for rows.Next() {
		n, err := scanNewsletterIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, n)
	}
	return issues, rows.Err()
}

const updateNewsletterIssue = `
UPDATE newsletter_issues SET subject = ?, body = ?, status = ?, updated_at = ?
WHERE id = ?
RETURNING ` + issueColumns

// UpdateNewsletterIssueParams holds the fields for UpdateNewsletterIssue.
type UpdateNewsletterIssueParams struct {
	Subject   string
	Body      string
	Status    string
	UpdatedAt time.Time
	ID        string
}

// UpdateNewsletterIssue overwrites an issue row.
func (q *Queries) UpdateNewsletterIssue(ctx context.Context, arg UpdateNewsletterIssueParams) (NewsletterIssue, error) {
	row := q.db.QueryRowContext(ctx, updateNewsletterIssue,
		arg.Subject, arg.Body, arg.Status, arg.UpdatedAt, arg.ID)
	return scanNewsletterIssue(row)
}

const markNewsletterIssueSent = `
UPDATE newsletter_issues SET status = ?, sent_at = ?, updated_at = ? WHERE id = ?
`

// MarkNewsletterIssueSent records the issue as dispatched.
func (q *Queries) MarkNewsletterIssueSent(ctx context.Context, id, status string, sentAt time.Time) error {
	_, err := q.db.ExecContext(ctx, markNewsletterIssueSent, status, sentAt, sentAt, id)
	return err
}

const deleteNewsletterIssue = `DELETE FROM newsletter_issues WHERE id = ?`

// DeleteNewsletterIssue removes an issue row.
func (q *Queries) DeleteNewsletterIssue(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteNewsletterIssue, id)
	return err
}
