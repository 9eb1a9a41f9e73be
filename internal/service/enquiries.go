// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// EnquiryService manages contact-form enquiries.
type EnquiryService struct {
	queries *store.Queries
	audit   *AuditService
}

// NewEnquiryService creates an EnquiryService.
func NewEnquiryService(queries *store.Queries, audit *AuditService) *EnquiryService {
	return &EnquiryService{queries: queries, audit: audit}
}

// EnquiryInput holds a submitted contact form.
type EnquiryInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
	Message  string `json:"message"`
}

func (in *EnquiryInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Email == "" && in.Phone == "" {
		return &ValidationError{Field: "email", Reason: "email or phone must be provided"}
	}
	if in.Message == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	return nil
}

// Create stores a new enquiry with status "new".
func (s *EnquiryService) Create(ctx context.Context, in EnquiryInput) (store.Enquiry, error) {
	if err := in.validate(); err != nil {
		return store.Enquiry{}, err
	}

	now := time.Now()
	return s.queries.CreateEnquiry(ctx, store.CreateEnquiryParams{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Interest:  in.Interest,
		Message:   in.Message,
		Status:    model.EnquiryStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Get fetches an enquiry by id.
func (s *EnquiryService) Get(ctx context.Context, id string) (store.Enquiry, error) {
	enquiry, err := s.queries.GetEnquiryByID(ctx, id)
	if err != nil {
		return store.Enquiry{}, notFound("enquiry", id, err)
	}
	return enquiry, nil
}

// List returns all enquiries, newest first.
func (s *EnquiryService) List(ctx context.Context) ([]store.Enquiry, error) {
	return s.queries.ListEnquiries(ctx)
}

// UpdateStatus changes the handling status of an enquiry.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id, status string) (store.Enquiry, error) {
	switch status {
	case model.EnquiryStatusNew, model.EnquiryStatusContacted, model.EnquiryStatusClosed:
	default:
		return store.Enquiry{}, &ValidationError{Field: "status", Reason: "unknown status " + status}
	}

	enquiry, err := s.queries.UpdateEnquiryStatus(ctx, store.UpdateEnquiryStatusParams{
		Status:    status,
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		return store.Enquiry{}, notFound("enquiry", id, err)
	}
	return enquiry, nil
}

// Delete removes an enquiry.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetEnquiryByID(ctx, id); err != nil {
		return notFound("enquiry", id, err)
	}
	return s.queries.DeleteEnquiry(ctx, id)
}
