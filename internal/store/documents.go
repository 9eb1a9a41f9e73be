// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Document is a downloadable file with metadata.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	Category    string    `json:"category"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mime_type"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const documentColumns = `id, title, description, file_name, file_path, category, size, mime_type, public, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.FileName, &d.FilePath,
		&d.Category, &d.Size, &d.MimeType, &d.Public, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const createDocument = `
INSERT INTO documents (id, title, description, file_name, file_path, category, size, mime_type, public, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + documentColumns

// CreateDocumentParams holds the fields for CreateDocument.
type CreateDocumentParams struct {
	ID          string
	Title       string
	Description string
	FileName    string
	FilePath    string
	Category    string
	Size        int64
	MimeType    string
	Public      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateDocument inserts a document row.
func (q *Queries) CreateDocument(ctx context.Context, arg CreateDocumentParams) (Document, error) {
	row := q.db.QueryRowContext(ctx, createDocument,
		arg.ID, arg.Title, arg.Description, arg.FileName, arg.FilePath,
		arg.Category, arg.Size, arg.MimeType, arg.Public, arg.CreatedAt, arg.UpdatedAt)
	return scanDocument(row)
}

const getDocumentByID = `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`

// GetDocumentByID fetches a document by id.
func (q *Queries) GetDocumentByID(ctx context.Context, id string) (Document, error) {
	return scanDocument(q.db.QueryRowContext(ctx, getDocumentByID, id))
}

const listDocuments = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC`

const listPublicDocuments = `SELECT ` + documentColumns + ` FROM documents WHERE public = 1 ORDER BY created_at DESC`

// ListDocuments returns all documents, newest first.
func (q *Queries) ListDocuments(ctx context.Context) ([]Document, error) {
	return q.queryDocuments(ctx, listDocuments)
}

// ListPublicDocuments returns documents visible to the public site.
func (q *Queries) ListPublicDocuments(ctx context.Context) ([]Document, error) {
	return q.queryDocuments(ctx, listPublicDocuments)
}

func (q *Queries) queryDocuments(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

const updateDocument = `
UPDATE documents SET title = ?, description = ?, category = ?, public = ?, updated_at = ?
WHERE id = ?
RETURNING ` + documentColumns

// UpdateDocumentParams holds the metadata fields editable after upload.
type UpdateDocumentParams struct {
	Title       string
	Description string
	Category    string
	Public      bool
	UpdatedAt   time.Time
	ID          string
}

// UpdateDocument overwrites document metadata. The stored file itself
// is immutable; replacing it means a new upload.
func (q *Queries) UpdateDocument(ctx context.Context, arg UpdateDocumentParams) (Document, error) {
	row := q.db.QueryRowContext(ctx, updateDocument,
		arg.Title, arg.Description, arg.Category, arg.Public, arg.UpdatedAt, arg.ID)
	return scanDocument(row)
}

const deleteDocument = `DELETE FROM documents WHERE id = ?`

// DeleteDocument removes a document row.
func (q *Queries) DeleteDocument(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteDocument, id)
	return err
}
