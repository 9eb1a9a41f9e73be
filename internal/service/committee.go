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

// CommitteeService manages the committee member cards shown on the
// about page.
type CommitteeService struct {
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

// NewCommitteeService creates a CommitteeService.
func NewCommitteeService(queries *store.Queries, reval *Revalidation, audit *AuditService) *CommitteeService {
	return &CommitteeService{queries: queries, reval: reval, audit: audit}
}

// CommitteeMemberInput holds the editable fields of a committee card.
type CommitteeMemberInput struct {
	Name         string
	Position     string
	Image        string
	Category     string
	Description  string
	DisplayOrder int64
}

func (in *CommitteeMemberInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Position == "" {
		return &ValidationError{Field: "position", Reason: "must not be empty"}
	}
	return nil
}

// Create validates and stores a committee member card.
func (s *CommitteeService) Create(ctx context.Context, in CommitteeMemberInput) (store.CommitteeMember, error) {
	if err := in.validate(); err != nil {
		return store.CommitteeMember{}, err
	}

	now := time.Now()
	member, err := s.queries.CreateCommitteeMember(ctx, store.CreateCommitteeMemberParams{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Position:     in.Position,
		Image:        in.Image,
		Category:     in.Category,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return store.CommitteeMember{}, err
	}

	s.reval.About(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "committee member created",
		map[string]any{"id": member.ID, "name": member.Name})
	return member, nil
}

// Get fetches a committee member by id.
func (s *CommitteeService) Get(ctx context.Context, id string) (store.CommitteeMember, error) {
	member, err := s.queries.GetCommitteeMemberByID(ctx, id)
	if err != nil {
		return store.CommitteeMember{}, notFound("committee member", id, err)
	}
	return member, nil
}

// List returns all members sorted by display order ascending, with
// newer cards first among equal orders.
func (s *CommitteeService) List(ctx context.Context) ([]store.CommitteeMember, error) {
	return s.queries.ListCommitteeMembers(ctx)
}

// Update validates and overwrites a committee member card.
func (s *CommitteeService) Update(ctx context.Context, id string, in CommitteeMemberInput) (store.CommitteeMember, error) {
	if err := in.validate(); err != nil {
		return store.CommitteeMember{}, err
	}

	member, err := s.queries.UpdateCommitteeMember(ctx, store.UpdateCommitteeMemberParams{
		Name:         in.Name,
		Position:     in.Position,
		Image:        in.Image,
		Category:     in.Category,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		UpdatedAt:    time.Now(),
		ID:           id,
	})
	if err != nil {
		return store.CommitteeMember{}, notFound("committee member", id, err)
	}

	s.reval.About(ctx)
	return member, nil
}

// Delete removes a committee member card.
func (s *CommitteeService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetCommitteeMemberByID(ctx, id); err != nil {
		return notFound("committee member", id, err)
	}
	if err := s.queries.DeleteCommitteeMember(ctx, id); err != nil {
		return err
	}
	s.reval.About(ctx)
	return nil
}
