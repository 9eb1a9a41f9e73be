// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// DocumentService manages downloadable documents. The stored file is
// written by the upload endpoint; this service owns the metadata rows
// and removes files on delete.
type DocumentService struct {
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(queries *store.Queries, reval *Revalidation, audit *AuditService) *DocumentService {
	return &DocumentService{queries: queries, reval: reval, audit: audit}
}

// DocumentInput holds the fields of a new document record. FilePath
// and the file metadata come from a completed upload.
type DocumentInput struct {
	Title       string
	Description string
	FileName    string
	FilePath    string
	Category    string
	Size        int64
	MimeType    string
	Public      bool
}

func (in *DocumentInput) validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.FilePath == "" {
		return &ValidationError{Field: "file_path", Reason: "must not be empty"}
	}
	return nil
}

// Create records an uploaded file as a document.
func (s *DocumentService) Create(ctx context.Context, in DocumentInput) (store.Document, error) {
	if err := in.validate(); err != nil {
		return store.Document{}, err
	}

	now := time.Now()
	doc, err := s.queries.CreateDocument(ctx, store.CreateDocumentParams{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		FileName:    in.FileName,
		FilePath:    in.FilePath,
		Category:    in.Category,
		Size:        in.Size,
		MimeType:    in.MimeType,
		Public:      in.Public,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Document{}, err
	}

	s.reval.Documents(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "document created",
		map[string]any{"id": doc.ID, "title": doc.Title})
	return doc, nil
}

// Get fetches a document by id.
func (s *DocumentService) Get(ctx context.Context, id string) (store.Document, error) {
	doc, err := s.queries.GetDocumentByID(ctx, id)
	if err != nil {
		return store.Document{}, notFound("document", id, err)
	}
	return doc, nil
}

// List returns all documents for the admin console.
func (s *DocumentService) List(ctx context.Context) ([]store.Document, error) {
	return s.queries.ListDocuments(ctx)
}

// ListPublic returns documents visible on the public site.
func (s *DocumentService) ListPublic(ctx context.Context) ([]store.Document, error) {
	return s.queries.ListPublicDocuments(ctx)
}

// DocumentUpdateInput holds the metadata fields editable after upload.
type DocumentUpdateInput struct {
	Title       string
	Description string
	Category    string
	Public      bool
}

// Update overwrites document metadata. The stored file is immutable.
func (s *DocumentService) Update(ctx context.Context, id string, in DocumentUpdateInput) (store.Document, error) {
	if in.Title == "" {
		return store.Document{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	doc, err := s.queries.UpdateDocument(ctx, store.UpdateDocumentParams{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Public:      in.Public,
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		return store.Document{}, notFound("document", id, err)
	}

	s.reval.Documents(ctx)
	return doc, nil
}

// Delete removes a document row and its file. A file already missing
// from disk is tolerated; the row is removed either way.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.queries.GetDocumentByID(ctx, id)
	if err != nil {
		return notFound("document", id, err)
	}
	if err := s.queries.DeleteDocument(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		slog.Warn("document file removal failed", "id", id, "path", doc.FilePath, "error", err)
	}

	s.reval.Documents(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "document deleted",
		map[string]any{"id": id})
	return nil
}
