// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// SMSSender sends a single text message.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// HTTPSMSGateway posts messages to a JSON SMS gateway endpoint
// authenticated by a bearer key.
type HTTPSMSGateway struct {
	endpoint string
	apiKey   string
	sender   string
	client   *http.Client
}

// NewHTTPSMSGateway creates a gateway client.
func NewHTTPSMSGateway(endpoint, apiKey, sender string) *HTTPSMSGateway {
	return &HTTPSMSGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		sender:   sender,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// Send posts one message to the gateway. Any non-2xx response is an
// error.
func (g *HTTPSMSGateway) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(smsRequest{To: phone, From: g.sender, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to SMS gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("SMS gateway returned %s", resp.Status)
	}
	return nil
}

// NoopSMSSender logs instead of sending. Used when SMS is not
// configured.
type NoopSMSSender struct{}

// Send logs the would-be delivery. The message body is never logged;
// it may carry a verification code.
func (NoopSMSSender) Send(_ context.Context, phone, _ string) error {
	slog.Info("SMS disabled, skipping send", "to", phone)
	return nil
}
