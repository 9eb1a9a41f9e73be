// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/clubarena/clubsite-go/internal/service"
)

// maxMultipartBody caps a whole upload request body: the largest
// allowed file plus room for the multipart framing and form fields.
const maxMultipartBody = service.MaxUploadBytes + 64<<10

// upload stores one file from a multipart form. The MIME allow-list
// and size limit are enforced by the media service; the transport
// ceiling stops an oversized body before it is spooled.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(service.MaxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	stored, err := h.Media.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}
