// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/service"
)

func (h *Handler) adminListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.Documents.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documents)
}

// adminCreateDocument accepts a multipart form with a "file" part and
// metadata fields, stores the file and records the document.
func (h *Handler) adminCreateDocument(w http.ResponseWriter, r *http.Request) {
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

	public, _ := strconv.ParseBool(r.FormValue("public"))
	doc, err := h.Documents.Create(r.Context(), service.DocumentInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		FileName:    stored.OriginalName,
		FilePath:    stored.Path,
		Category:    r.FormValue("category"),
		Size:        stored.Size,
		MimeType:    stored.MimeType,
		Public:      public,
	})
	if err != nil {
		// The document row failed, so the stored file is orphaned.
		if rmErr := h.Media.Remove(stored.FileName); rmErr != nil {
			h.Logger.Warn("removing orphaned upload failed", "file", stored.FileName, "error", rmErr)
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) adminGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) adminUpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Public      bool   `json:"public"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	doc, err := h.Documents.Update(r.Context(), chi.URLParam(r, "id"), service.DocumentUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Public:      req.Public,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) adminDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.Documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
