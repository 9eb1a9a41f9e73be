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

// EventService manages club events and their registrations.
type EventService struct {
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

// NewEventService creates an EventService.
func NewEventService(queries *store.Queries, reval *Revalidation, audit *AuditService) *EventService {
	return &EventService{queries: queries, reval: reval, audit: audit}
}

// EventInput holds the editable fields of an event.
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	EndDate     *time.Time
	Location    string
	Status      string
	FormSchema  string // JSON form schema, empty for the default form
}

func (in *EventInput) validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	switch in.Status {
	case "", model.EventStatusUpcoming, model.EventStatusCompleted:
	default:
		return &ValidationError{Field: "status", Reason: "unknown status " + in.Status}
	}
	return nil
}

func (in *EventInput) formSchema() sql.NullString {
	if in.FormSchema == "" {
		return sql.NullString{}
	}
	return util.NullStringFrom(in.FormSchema)
}

// Create validates and stores a new event, then revalidates the event
// pages.
func (s *EventService) Create(ctx context.Context, in EventInput) (store.Event, error) {
	if err := in.validate(); err != nil {
		return store.Event{}, err
	}
	status := in.Status
	if status == "" {
		status = model.EventStatusUpcoming
	}

	now := time.Now()
	event, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		EndDate:     util.NullTimeFromPtr(in.EndDate),
		Location:    in.Location,
		Status:      status,
		FormSchema:  in.formSchema(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Event{}, err
	}

	s.reval.Events(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "event created",
		map[string]any{"id": event.ID, "title": event.Title})
	return event, nil
}

// Get fetches an event by id.
func (s *EventService) Get(ctx context.Context, id string) (store.Event, error) {
	event, err := s.queries.GetEventByID(ctx, id)
	if err != nil {
		return store.Event{}, notFound("event", id, err)
	}
	return event, nil
}

// List returns all events for the admin console.
func (s *EventService) List(ctx context.Context) ([]store.Event, error) {
	return s.queries.ListEvents(ctx)
}

// ListUpcoming returns upcoming events, soonest first.
func (s *EventService) ListUpcoming(ctx context.Context) ([]store.Event, error) {
	return s.queries.ListEventsByStatus(ctx, model.EventStatusUpcoming)
}

// ListCompleted returns completed events.
func (s *EventService) ListCompleted(ctx context.Context) ([]store.Event, error) {
	return s.queries.ListEventsByStatus(ctx, model.EventStatusCompleted)
}

// Update validates and overwrites an event, then revalidates the event
// pages.
func (s *EventService) Update(ctx context.Context, id string, in EventInput) (store.Event, error) {
	if err := in.validate(); err != nil {
		return store.Event{}, err
	}
	if in.Status == "" {
		return store.Event{}, &ValidationError{Field: "status", Reason: "must be set"}
	}

	event, err := s.queries.UpdateEvent(ctx, store.UpdateEventParams{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		EndDate:     util.NullTimeFromPtr(in.EndDate),
		Location:    in.Location,
		Status:      in.Status,
		FormSchema:  in.formSchema(),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		return store.Event{}, notFound("event", id, err)
	}

	s.reval.Events(ctx)
	return event, nil
}

// Delete removes an event and its registrations, then revalidates the
// event pages.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetEventByID(ctx, id); err != nil {
		return notFound("event", id, err)
	}
	if err := s.queries.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.reval.Events(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "event deleted",
		map[string]any{"id": id})
	return nil
}

// RegistrationInput holds a visitor's registration submission.
type RegistrationInput struct {
	Name      string
	Email     string
	Phone     string
	Responses string // serialized dynamic-form responses
}

func (in *RegistrationInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Email == "" && in.Phone == "" {
		return &ValidationError{Field: "email", Reason: "email or phone must be provided"}
	}
	return nil
}

// Register records a registration for an event. The event must exist.
func (s *EventService) Register(ctx context.Context, eventID string, in RegistrationInput) (store.EventRegistration, error) {
	if err := in.validate(); err != nil {
		return store.EventRegistration{}, err
	}
	if _, err := s.queries.GetEventByID(ctx, eventID); err != nil {
		return store.EventRegistration{}, notFound("event", eventID, err)
	}

	responses := in.Responses
	if responses == "" {
		responses = "{}"
	}
	return s.queries.CreateEventRegistration(ctx, store.CreateEventRegistrationParams{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Responses: responses,
		CreatedAt: time.Now(),
	})
}

// Registrations returns the registrations for an event, newest first.
func (s *EventService) Registrations(ctx context.Context, eventID string) ([]store.EventRegistration, error) {
	if _, err := s.queries.GetEventByID(ctx, eventID); err != nil {
		return nil, notFound("event", eventID, err)
	}
	return s.queries.ListEventRegistrations(ctx, eventID)
}
