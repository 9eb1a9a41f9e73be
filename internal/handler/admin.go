// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/auth"
	"github.com/clubarena/clubsite-go/internal/middleware"
	"github.com/clubarena/clubsite-go/internal/model"
)

// adminLogin authenticates a console administrator and renews the
// session token to prevent fixation.
func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.queries.GetAdminByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.Audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
				"failed admin login", map[string]any{"username": req.Username})
			writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ok, err := auth.CheckPassword(req.Password, admin.PasswordHash)
	if err != nil || !ok {
		h.Audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
			"failed admin login", map[string]any{"username": req.Username})
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.AdminSM.RenewToken(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.AdminSM.Put(r.Context(), middleware.SessionKeyAdminID, admin.ID)

	h.Audit.Log(r.Context(), model.AuditLevelInfo, model.AuditCategoryAuth,
		"admin login", map[string]any{"admin": admin.ID})
	writeJSONSuccess(w, map[string]any{"username": admin.Username})
}

// adminLogout destroys the admin session.
func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AdminSM.Destroy(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSONSuccess(w, nil)
}

// adminDashboard returns the aggregated dashboard.
func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Dashboard.Load(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// adminAudit returns the newest audit entries, up to ?limit= (default
// 50, capped at 500).
func (h *Handler) adminAudit(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(parsed, 500)
	}

	entries, err := h.Audit.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) adminGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
