// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) adminListEnquiries(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.Enquiries.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enquiries)
}

func (h *Handler) adminGetEnquiry(w http.ResponseWriter, r *http.Request) {
	enquiry, err := h.Enquiries.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enquiry)
}

func (h *Handler) adminUpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	enquiry, err := h.Enquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enquiry)
}

func (h *Handler) adminDeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.Enquiries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
