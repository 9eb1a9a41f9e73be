// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/util"
)

// CampService manages training camps and their registrations.
type CampService struct {
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

// NewCampService creates a CampService.
func NewCampService(queries *store.Queries, reval *Revalidation, audit *AuditService) *CampService {
	return &CampService{queries: queries, reval: reval, audit: audit}
}

// CampInput holds the editable fields of a camp.
type CampInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Location    string
	Active      bool
	FormSchema  string
}

func (in *CampInput) validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.StartDate.IsZero() {
		return &ValidationError{Field: "start_date", Reason: "must be set"}
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return &ValidationError{Field: "end_date", Reason: "must not precede start_date"}
	}
	return nil
}

func (in *CampInput) formSchema() sql.NullString {
	if in.FormSchema == "" {
		return sql.NullString{}
	}
	return util.NullStringFrom(in.FormSchema)
}

// Create validates and stores a new camp.
func (s *CampService) Create(ctx context.Context, in CampInput) (store.Camp, error) {
	if err := in.validate(); err != nil {
		return store.Camp{}, err
	}

	now := time.Now()
	camp, err := s.queries.CreateCamp(ctx, store.CreateCampParams{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     util.NullTimeFromPtr(in.EndDate),
		Location:    in.Location,
		Active:      in.Active,
		FormSchema:  in.formSchema(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Camp{}, err
	}

	s.reval.Camps(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "camp created",
		map[string]any{"id": camp.ID, "title": camp.Title})
	return camp, nil
}

// Get fetches a camp by id.
func (s *CampService) Get(ctx context.Context, id string) (store.Camp, error) {
	camp, err := s.queries.GetCampByID(ctx, id)
	if err != nil {
		return store.Camp{}, notFound("camp", id, err)
	}
	return camp, nil
}

// List returns all camps for the admin console.
func (s *CampService) List(ctx context.Context) ([]store.Camp, error) {
	return s.queries.ListCamps(ctx)
}

// ListActive returns camps open for registration, soonest first.
func (s *CampService) ListActive(ctx context.Context) ([]store.Camp, error) {
	return s.queries.ListActiveCamps(ctx)
}

// Update validates and overwrites a camp.
func (s *CampService) Update(ctx context.Context, id string, in CampInput) (store.Camp, error) {
	if err := in.validate(); err != nil {
		return store.Camp{}, err
	}

	camp, err := s.queries.UpdateCamp(ctx, store.UpdateCampParams{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     util.NullTimeFromPtr(in.EndDate),
		Location:    in.Location,
		Active:      in.Active,
		FormSchema:  in.formSchema(),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		return store.Camp{}, notFound("camp", id, err)
	}

	s.reval.Camps(ctx)
	return camp, nil
}

// Delete removes a camp and its registrations.
func (s *CampService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetCampByID(ctx, id); err != nil {
		return notFound("camp", id, err)
	}
	if err := s.queries.DeleteCamp(ctx, id); err != nil {
		return err
	}
	s.reval.Camps(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "camp deleted",
		map[string]any{"id": id})
	return nil
}

// Register records a registration for a camp. The camp must exist and
// be open.
func (s *CampService) Register(ctx context.Context, campID string, in RegistrationInput) (store.CampRegistration, error) {
	if err := in.validate(); err != nil {
		return store.CampRegistration{}, err
	}
	camp, err := s.queries.GetCampByID(ctx, campID)
	if err != nil {
		return store.CampRegistration{}, notFound("camp", campID, err)
	}
	if !camp.Active {
		return store.CampRegistration{}, &ValidationError{Field: "camp", Reason: "registration is closed"}
	}

	responses := in.Responses
	if responses == "" {
		responses = "{}"
	}
	return s.queries.CreateCampRegistration(ctx, store.CreateCampRegistrationParams{
		ID:        uuid.New().String(),
		CampID:    campID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Responses: responses,
		CreatedAt: time.Now(),
	})
}

// Registrations returns the registrations for a camp, newest first.
func (s *CampService) Registrations(ctx context.Context, campID string) ([]store.CampRegistration, error) {
	if _, err := s.queries.GetCampByID(ctx, campID); err != nil {
		return nil, notFound("camp", campID, err)
	}
	return s.queries.ListCampRegistrations(ctx, campID)
}
