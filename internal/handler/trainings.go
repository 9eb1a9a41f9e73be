// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/service"
)

type trainingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
	Active      bool   `json:"active"`
	FormSchema  string `json:"form_schema"`
}

func (req trainingRequest) input() service.TrainingInput {
	return service.TrainingInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Level:       req.Level,
		Active:      req.Active,
		FormSchema:  req.FormSchema,
	}
}

func (h *Handler) adminListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.Trainings.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trainings)
}

func (h *Handler) adminCreateTraining(w http.ResponseWriter, r *http.Request) {
	var req trainingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	training, err := h.Trainings.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, training)
}

func (h *Handler) adminGetTraining(w http.ResponseWriter, r *http.Request) {
	training, err := h.Trainings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, training)
}

func (h *Handler) adminUpdateTraining(w http.ResponseWriter, r *http.Request) {
	var req trainingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	training, err := h.Trainings.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, training)
}

func (h *Handler) adminDeleteTraining(w http.ResponseWriter, r *http.Request) {
	if err := h.Trainings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

func (h *Handler) adminTrainingRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.Trainings.Registrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
