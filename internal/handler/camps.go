// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/service"
)

type campRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    string     `json:"location"`
	Active      bool       `json:"active"`
	FormSchema  string     `json:"form_schema"`
}

func (req campRequest) input() service.CampInput {
	return service.CampInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Active:      req.Active,
		FormSchema:  req.FormSchema,
	}
}

func (h *Handler) adminListCamps(w http.ResponseWriter, r *http.Request) {
	camps, err := h.Camps.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camps)
}

func (h *Handler) adminCreateCamp(w http.ResponseWriter, r *http.Request) {
	var req campRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	camp, err := h.Camps.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, camp)
}

func (h *Handler) adminGetCamp(w http.ResponseWriter, r *http.Request) {
	camp, err := h.Camps.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

func (h *Handler) adminUpdateCamp(w http.ResponseWriter, r *http.Request) {
	var req campRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	camp, err := h.Camps.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

func (h *Handler) adminDeleteCamp(w http.ResponseWriter, r *http.Request) {
	if err := h.Camps.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

func (h *Handler) adminCampRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.Camps.Registrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
