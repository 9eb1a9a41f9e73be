// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the business logic between the HTTP
// handlers and the store: validation, transactional writes, cache
// revalidation and the public-read degrade policy.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ValidationError reports rejected caller input. Handlers map it to a
// 400 response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing entity. Handlers map it to a 404
// response.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness violation, such as registering an
// email that already has an account. Handlers map it to a 409 response.
type ConflictError struct {
	Entity string
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Detail)
}

// ExpiredError reports a code or token past its validity window.
type ExpiredError struct {
	What string
}

func (e *ExpiredError) Error() string {
	return e.What + " has expired"
}

// IntegrityError reports a write rejected because it references rows
// that do not exist. The order endpoint returns the missing product ids
// to the caller.
type IntegrityError struct {
	MissingProductIDs []string
}

func (e *IntegrityError) Error() string {
	return "unknown product ids: " + strings.Join(e.MissingProductIDs, ", ")
}

// ExternalServiceError reports a failure in an outbound dependency
// (mail, SMS, payment gateway).
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return e.Service + ": " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// notFound converts sql.ErrNoRows into a NotFoundError and passes any
// other error through.
func notFound(entity, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The driver exposes no stable error type for this, so the
// message is matched.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a SQLite foreign-key
// failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// DegradeList applies the public-read degrade policy: when loading data
// for a public page fails, the page renders with an empty list instead
// of an error. The failure is logged so it is not silent.
func DegradeList[T any](logger *slog.Logger, what string, items []T, err error) []T {
	if err != nil {
		logger.Warn("public read degraded to empty", "data", what, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// DegradeValue is DegradeList for single values: a failed public read
// yields the zero value.
func DegradeValue[T any](logger *slog.Logger, what string, value T, err error) T {
	if err != nil {
		logger.Warn("public read degraded to zero value", "data", what, "error", err)
		var zero T
		return zero
	}
	return value
}
