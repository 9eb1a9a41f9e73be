// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/service"
)

type issueRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (req issueRequest) input() service.IssueInput {
	return service.IssueInput{Subject: req.Subject, Body: req.Body}
}

func (h *Handler) adminNewsletterSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.Newsletter.Subscribers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscribers)
}

func (h *Handler) adminListIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.Newsletter.ListIssues(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (h *Handler) adminCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	issue, err := h.Newsletter.CreateIssue(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

func (h *Handler) adminGetIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := h.Newsletter.GetIssue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

func (h *Handler) adminUpdateIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	issue, err := h.Newsletter.UpdateIssue(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// adminQueueIssue marks a draft for dispatch by the scheduler.
func (h *Handler) adminQueueIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := h.Newsletter.QueueIssue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

func (h *Handler) adminDeleteIssue(w http.ResponseWriter, r *http.Request) {
	if err := h.Newsletter.DeleteIssue(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
