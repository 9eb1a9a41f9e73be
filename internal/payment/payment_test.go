// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubarena/clubsite-go/internal/service"
)

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "pk_test" || pass != "sk_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req IntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.AmountCents != 2500 {
			t.Errorf("amount = %d, want 2500", req.AmountCents)
		}
		_ = json.NewEncoder(w).Encode(Intent{ID: "pi_1", Status: "requires_action", RedirectURL: "https://pay.example.com/pi_1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pk_test", "sk_test")
	intent, err := c.CreateIntent(context.Background(), IntentRequest{
		AmountCents: 2500,
		Currency:    "EUR",
		Reference:   "order-1",
	})
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if intent.ID != "pi_1" {
		t.Errorf("ID = %q, want %q", intent.ID, "pi_1")
	}
	if intent.RedirectURL == "" {
		t.Error("empty redirect URL")
	}
}

func TestCreateIntent_NotConfigured(t *testing.T) {
	c := NewClient("https://pay.example.com", "", "")

	_, err := c.CreateIntent(context.Background(), IntentRequest{AmountCents: 100, Currency: "EUR"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestCreateIntent_InvalidAmount(t *testing.T) {
	c := NewClient("https://pay.example.com", "pk", "sk")

	var verr *service.ValidationError
	if _, err := c.CreateIntent(context.Background(), IntentRequest{AmountCents: 0, Currency: "EUR"}); !errors.As(err, &verr) {
		t.Errorf("zero amount error = %v, want ValidationError", err)
	}
	if _, err := c.CreateIntent(context.Background(), IntentRequest{AmountCents: -5, Currency: "EUR"}); !errors.As(err, &verr) {
		t.Errorf("negative amount error = %v, want ValidationError", err)
	}
}

func TestCreateIntent_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pk", "sk")
	_, err := c.CreateIntent(context.Background(), IntentRequest{AmountCents: 100, Currency: "EUR"})

	var ext *service.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Errorf("error = %v, want ExternalServiceError", err)
	}
}
