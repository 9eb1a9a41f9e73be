// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/auth"
	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// ErrInvalidCredentials is returned for a failed login. It is the same
// for an unknown email and a wrong password so the response does not
// reveal which emails have accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService manages member accounts. Passwords are stored as salted
// argon2id hashes and compared in constant time.
type UserService struct {
	queries *store.Queries
	audit   *AuditService
}

// NewUserService creates a UserService.
func NewUserService(queries *store.Queries, audit *AuditService) *UserService {
	return &UserService{queries: queries, audit: audit}
}

// RegisterInput holds a member registration submission.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (in *RegisterInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if len(in.Password) < 8 {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

// Register creates a member account. A duplicate email is a conflict.
// Contact verification is checked by the handler before calling this.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (store.User, error) {
	if err := in.validate(); err != nil {
		return store.User{}, err
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.User{}, err
	}

	now := time.Now()
	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return store.User{}, &ConflictError{Entity: "user", Detail: "email already registered"}
		}
		return store.User{}, err
	}

	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryAuth, "user registered",
		map[string]any{"id": user.ID})
	return user, nil
}

// Authenticate checks a member's email and password. Both failure modes
// return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, err
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return store.User{}, err
	}
	if !ok {
		s.audit.Log(ctx, model.AuditLevelWarning, model.AuditCategoryAuth, "failed login",
			map[string]any{"user": user.ID})
		return store.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (store.User, error) {
	user, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		return store.User{}, notFound("user", id, err)
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (store.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return store.User{}, notFound("user", email, err)
	}
	return user, nil
}

// List returns all users for the admin console.
func (s *UserService) List(ctx context.Context) ([]store.User, error) {
	return s.queries.ListUsers(ctx)
}

// SetPassword replaces the password of the account with the given
// email. Used by the reset flow after its token has been validated.
func (s *UserService) SetPassword(ctx context.Context, email, password string) error {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if _, err := s.queries.GetUserByEmail(ctx, email); err != nil {
		return notFound("user", email, err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: passwordHash,
		UpdatedAt:    time.Now(),
		Email:        email,
	}); err != nil {
		return err
	}

	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryAuth, "password reset completed",
		map[string]any{"email_domain": emailDomain(email)})
	return nil
}

// Delete removes a member account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetUserByID(ctx, id); err != nil {
		return notFound("user", id, err)
	}
	return s.queries.DeleteUser(ctx, id)
}

// emailDomain returns the part after "@" for audit metadata, keeping
// full addresses out of the log.
func emailDomain(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return email[i+1:]
		}
	}
	return ""
}
