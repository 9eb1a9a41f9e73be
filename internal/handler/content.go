// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// adminListContent returns all content entries, optionally filtered by
// ?area=.
func (h *Handler) adminListContent(w http.ResponseWriter, r *http.Request) {
	if area := r.URL.Query().Get("area"); area != "" {
		entries, err := h.Content.ListByArea(r.Context(), area)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := h.Content.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// adminSetContent upserts one content entry. The value is sanitized
// before it is stored.
func (h *Handler) adminSetContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Area  string `json:"area"`
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Content.Set(r.Context(), req.Area, req.Key, req.Value); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

func (h *Handler) adminDeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
