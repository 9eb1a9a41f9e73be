// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package payment wraps the hosted payment gateway's JSON API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clubarena/clubsite-go/internal/service"
)

// ErrNotConfigured is returned when the gateway key pair is missing.
// The payment endpoint surfaces this as a server-side configuration
// error rather than attempting an unauthenticated call.
var ErrNotConfigured = errors.New("payment gateway is not configured")

// Client calls the payment gateway, authenticating with the merchant
// key pair over HTTP basic auth.
type Client struct {
	endpoint  string
	publicKey string
	secretKey string
	client    *http.Client
}

// NewClient creates a gateway client. Either key may be empty, in
// which case CreateIntent fails with ErrNotConfigured.
func NewClient(endpoint, publicKey, secretKey string) *Client {
	return &Client{
		endpoint:  endpoint,
		publicKey: publicKey,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether the merchant key pair is present.
func (c *Client) Configured() bool {
	return c.publicKey != "" && c.secretKey != ""
}

// IntentRequest describes a payment to initiate. AmountCents is in
// integer minor units and must be positive.
type IntentRequest struct {
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Reference   string `json:"reference"` // our order id
}

// Intent is the gateway's created payment session.
type Intent struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
}

// CreateIntent initiates a payment at the gateway. Validation failures
// are reported before any network call.
func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	if !c.Configured() {
		return Intent{}, ErrNotConfigured
	}
	if req.AmountCents <= 0 {
		return Intent{}, &service.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if req.Currency == "" {
		return Intent{}, &service.ValidationError{Field: "currency", Reason: "must not be empty"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return Intent{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/intents", bytes.NewReader(payload))
	if err != nil {
		return Intent{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Intent{}, &service.ExternalServiceError{Service: "payment gateway", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Intent{}, &service.ExternalServiceError{Service: "payment gateway", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Intent{}, &service.ExternalServiceError{
			Service: "payment gateway",
			Err:     fmt.Errorf("returned %s", resp.Status),
		}
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return Intent{}, &service.ExternalServiceError{Service: "payment gateway", Err: err}
	}
	return intent, nil
}
