// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/service"
)

type committeeMemberRequest struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	DisplayOrder int64  `json:"display_order"`
}

func (req committeeMemberRequest) input() service.CommitteeMemberInput {
	return service.CommitteeMemberInput{
		Name:         req.Name,
		Position:     req.Position,
		Image:        req.Image,
		Category:     req.Category,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
}

func (h *Handler) adminListCommittee(w http.ResponseWriter, r *http.Request) {
	members, err := h.Committee.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) adminCreateCommitteeMember(w http.ResponseWriter, r *http.Request) {
	var req committeeMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	member, err := h.Committee.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *Handler) adminGetCommitteeMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.Committee.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) adminUpdateCommitteeMember(w http.ResponseWriter, r *http.Request) {
	var req committeeMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	member, err := h.Committee.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) adminDeleteCommitteeMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Committee.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
