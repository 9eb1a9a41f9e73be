// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/service"
)

// eventRequest is the admin payload for creating or updating an event.
type eventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	EndDate     *time.Time `json:"end_date"`
	Location    string     `json:"location"`
	Status      string     `json:"status"`
	FormSchema  string     `json:"form_schema"`
}

func (req eventRequest) input() service.EventInput {
	return service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Status:      req.Status,
		FormSchema:  req.FormSchema,
	}
}

func (h *Handler) adminListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) adminCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, err := h.Events.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *Handler) adminGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.Events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) adminUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, err := h.Events.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) adminDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

func (h *Handler) adminEventRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.Events.Registrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
