// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP surface: the public JSON API,
// member authentication, the admin console API and the upload,
// payment and health endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clubarena/clubsite-go/internal/payment"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/verification"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeJSONSuccess writes a JSON success response.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON parses the request body into dest. A malformed body is
// reported to the client; the caller just returns on false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeServiceError maps the service error taxonomy onto HTTP
// statuses. Unrecognized errors are a 500 with a generic message so
// internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validation *service.ValidationError
		notFound   *service.NotFoundError
		conflict   *service.ConflictError
		expired    *service.ExpiredError
		integrity  *service.IntegrityError
		external   *service.ExternalServiceError
	)

	switch {
	case errors.As(err, &integrity):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":             false,
			"error":               integrity.Error(),
			"missing_product_ids": integrity.MissingProductIDs,
		})
	case errors.As(err, &validation):
		writeJSONError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		writeJSONError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		writeJSONError(w, http.StatusConflict, conflict.Error())
	case errors.As(err, &expired):
		writeJSONError(w, http.StatusGone, expired.Error())
	case errors.Is(err, verification.ErrRateLimited):
		writeJSONError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, payment.ErrNotConfigured):
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &external):
		writeJSONError(w, http.StatusBadGateway, external.Service+" is unavailable")
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
