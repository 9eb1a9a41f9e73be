// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/clubarena/clubsite-go/internal/middleware"
	"github.com/clubarena/clubsite-go/internal/service"
)

// sendVerificationCode issues a six-digit code to a phone number or
// email address.
func (h *Handler) sendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Verifier.Issue(r.Context(), req.Address); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// verifyCode checks a submitted code and opens the trust window for
// the address.
func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
		Code    string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Verifier.Verify(r.Context(), req.Address, req.Code); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// register creates a member account. The submitted contact address
// must have been verified within the trust window; the verification
// record is consumed on success.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if !decodeJSON(w, r, &req) {
		return
	}

	address := req.Phone
	if address == "" {
		address = req.Email
	}
	if !h.Verifier.IsTrusted(r.Context(), address) {
		writeJSONError(w, http.StatusForbidden, "contact address is not verified")
		return
	}

	user, err := h.Users.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.Verifier.Clear(r.Context(), address); err != nil {
		h.Logger.Warn("clearing consumed verification failed", "error", err)
	}

	if err := h.UserSM.SetSession(w, user.ID, user.Name, user.Email); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// login starts a member session.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.UserSM.SetSession(w, user.ID, user.Name, user.Email); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// logout clears the member session cookie.
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.UserSM.DeleteSession(w)
	writeJSONSuccess(w, nil)
}

// currentUser returns the logged-in member's account.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.Users.Get(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// requestPasswordReset issues a reset token and mails a reset link.
// The response is the same whether or not the email has an account, so
// the endpoint cannot be used to probe for registered addresses.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeJSONError(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, err := h.Users.GetByEmail(r.Context(), req.Email); err == nil {
		if err := h.Verifier.RequestReset(r.Context(), req.Email, h.ResetURLBase); err != nil {
			h.Logger.Warn("password reset request failed", "error", err)
		}
	}
	writeJSONSuccess(w, nil)
}

// resetPassword completes the reset flow: the token is validated,
// the password replaced and the token consumed.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Verifier.ValidateReset(r.Context(), req.Email, req.Token); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.Users.SetPassword(r.Context(), req.Email, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.Verifier.ConsumeReset(r.Context(), req.Email); err != nil {
		h.Logger.Warn("consuming reset token failed", "error", err)
	}
	writeJSONSuccess(w, nil)
}
