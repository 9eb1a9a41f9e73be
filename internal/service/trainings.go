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

// TrainingService manages training programmes and their registrations.
type TrainingService struct {
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

// NewTrainingService creates a TrainingService.
func NewTrainingService(queries *store.Queries, reval *Revalidation, audit *AuditService) *TrainingService {
	return &TrainingService{queries: queries, reval: reval, audit: audit}
}

// TrainingInput holds the editable fields of a training programme.
type TrainingInput struct {
	Title       string
	Description string
	Duration    string
	Level       string
	Active      bool
	FormSchema  string
}

func (in *TrainingInput) validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

func (in *TrainingInput) formSchema() sql.NullString {
	if in.FormSchema == "" {
		return sql.NullString{}
	}
	return util.NullStringFrom(in.FormSchema)
}

// Create validates and stores a new training programme.
func (s *TrainingService) Create(ctx context.Context, in TrainingInput) (store.Training, error) {
	if err := in.validate(); err != nil {
		return store.Training{}, err
	}

	now := time.Now()
	training, err := s.queries.CreateTraining(ctx, store.CreateTrainingParams{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		Level:       in.Level,
		Active:      in.Active,
		FormSchema:  in.formSchema(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Training{}, err
	}

	s.reval.Trainings(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "training created",
		map[string]any{"id": training.ID, "title": training.Title})
	return training, nil
}

// Get fetches a training by id.
func (s *TrainingService) Get(ctx context.Context, id string) (store.Training, error) {
	training, err := s.queries.GetTrainingByID(ctx, id)
	if err != nil {
		return store.Training{}, notFound("training", id, err)
	}
	return training, nil
}

// List returns all trainings for the admin console.
func (s *TrainingService) List(ctx context.Context) ([]store.Training, error) {
	return s.queries.ListTrainings(ctx)
}

// ListActive returns trainings open for registration.
func (s *TrainingService) ListActive(ctx context.Context) ([]store.Training, error) {
	return s.queries.ListActiveTrainings(ctx)
}

// Update validates and overwrites a training programme.
func (s *TrainingService) Update(ctx context.Context, id string, in TrainingInput) (store.Training, error) {
	if err := in.validate(); err != nil {
		return store.Training{}, err
	}

	training, err := s.queries.UpdateTraining(ctx, store.UpdateTrainingParams{
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		Level:       in.Level,
		Active:      in.Active,
		FormSchema:  in.formSchema(),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		return store.Training{}, notFound("training", id, err)
	}

	s.reval.Trainings(ctx)
	return training, nil
}

// Delete removes a training and its registrations.
func (s *TrainingService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetTrainingByID(ctx, id); err != nil {
		return notFound("training", id, err)
	}
	if err := s.queries.DeleteTraining(ctx, id); err != nil {
		return err
	}
	s.reval.Trainings(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "training deleted",
		map[string]any{"id": id})
	return nil
}

// Register records a registration for a training. The training must
// exist and be active.
func (s *TrainingService) Register(ctx context.Context, trainingID string, in RegistrationInput) (store.TrainingRegistration, error) {
	if err := in.validate(); err != nil {
		return store.TrainingRegistration{}, err
	}
	training, err := s.queries.GetTrainingByID(ctx, trainingID)
	if err != nil {
		return store.TrainingRegistration{}, notFound("training", trainingID, err)
	}
	if !training.Active {
		return store.TrainingRegistration{}, &ValidationError{Field: "training", Reason: "registration is closed"}
	}

	responses := in.Responses
	if responses == "" {
		responses = "{}"
	}
	return s.queries.CreateTrainingRegistration(ctx, store.CreateTrainingRegistrationParams{
		ID:         uuid.New().String(),
		TrainingID: trainingID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Responses:  responses,
		CreatedAt:  time.Now(),
	})
}

// Registrations returns the registrations for a training, newest first.
func (s *TrainingService) Registrations(ctx context.Context, trainingID string) ([]store.TrainingRegistration, error) {
	if _, err := s.queries.GetTrainingByID(ctx, trainingID); err != nil {
		return nil, notFound("training", trainingID, err)
	}
	return s.queries.ListTrainingRegistrations(ctx, trainingID)
}
