// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubarena/clubsite-go/internal/payment"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/store"
)

// servePublicList serves a cached public list. On a cache miss the
// loader runs and its result is cached under the page path; a loader
// failure degrades to an empty list.
func servePublicList[T any](h *Handler, w http.ResponseWriter, r *http.Request, path, what string, load func(context.Context) ([]T, error)) {
	ctx := r.Context()

	var cached []T
	if err := h.Reval.Cache().GetJSON(ctx, path, &cached); err == nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	rows, err := load(ctx)
	items := service.DegradeList(h.Logger, what, rows, err)
	if err == nil {
		h.Reval.Cache().SetJSON(ctx, path, items)
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) listPublicEvents(w http.ResponseWriter, r *http.Request) {
	servePublicList(h, w, r, service.PathEvents, "events", h.Events.ListUpcoming)
}

func (h *Handler) listPublicTrainings(w http.ResponseWriter, r *http.Request) {
	servePublicList(h, w, r, service.PathTrainings, "trainings", h.Trainings.ListActive)
}

func (h *Handler) listPublicCamps(w http.ResponseWriter, r *http.Request) {
	servePublicList(h, w, r, service.PathCamps, "camps", h.Camps.ListActive)
}

func (h *Handler) listPublicCommittee(w http.ResponseWriter, r *http.Request) {
	servePublicList(h, w, r, service.PathAbout, "committee", h.Committee.List)
}

func (h *Handler) listPublicDocuments(w http.ResponseWriter, r *http.Request) {
	servePublicList(h, w, r, service.PathDocuments, "documents", h.Documents.ListPublic)
}

// listPublicProducts supports ?category= and ?featured=1 filters.
// Only the unfiltered catalogue is cached.
func (h *Handler) listPublicProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	featured := r.URL.Query().Get("featured") == "1"

	switch {
	case featured:
		rows, err := h.Products.ListFeatured(r.Context())
		writeJSON(w, http.StatusOK, service.DegradeList(h.Logger, "featured products", rows, err))
	case category != "":
		rows, err := h.Products.ListByCategory(r.Context(), category)
		writeJSON(w, http.StatusOK, service.DegradeList(h.Logger, "products by category", rows, err))
	default:
		servePublicList(h, w, r, service.PathStore, "products", h.Products.List)
	}
}

// homePayload is the aggregated home page data.
type homePayload struct {
	Content          map[string]string `json:"content"`
	UpcomingEvents   []store.Event     `json:"upcoming_events"`
	FeaturedProducts []store.Product   `json:"featured_products"`
}

// homePage aggregates the home sections. Each section degrades
// independently, so a broken query blanks one section, not the page.
func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cached homePayload
	if err := h.Reval.Cache().GetJSON(ctx, service.PathHome, &cached); err == nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	content, contentErr := h.Content.AreaMap(ctx, "home")
	events, eventsErr := h.Events.ListUpcoming(ctx)
	products, productsErr := h.Products.ListFeatured(ctx)

	payload := homePayload{
		Content:          service.DegradeValue(h.Logger, "home content", content, contentErr),
		UpcomingEvents:   service.DegradeList(h.Logger, "upcoming events", events, eventsErr),
		FeaturedProducts: service.DegradeList(h.Logger, "featured products", products, productsErr),
	}
	if payload.Content == nil {
		payload.Content = map[string]string{}
	}

	if contentErr == nil && eventsErr == nil && productsErr == nil {
		h.Reval.Cache().SetJSON(ctx, service.PathHome, payload)
	}
	writeJSON(w, http.StatusOK, payload)
}

// contentArea returns one area's content map. Degrades to empty.
func (h *Handler) contentArea(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")

	values, err := h.Content.AreaMap(r.Context(), area)
	values = service.DegradeValue(h.Logger, "content area "+area, values, err)
	if values == nil {
		values = map[string]string{}
	}
	writeJSON(w, http.StatusOK, values)
}

// registrationRequest is a visitor registration submission.
type registrationRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Responses string `json:"responses"`
}

func (req registrationRequest) input() service.RegistrationInput {
	return service.RegistrationInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Responses: req.Responses,
	}
}

func (h *Handler) registerForEvent(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reg, err := h.Events.Register(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) registerForTraining(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reg, err := h.Trainings.Register(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) registerForCamp(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reg, err := h.Camps.Register(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) createEnquiry(w http.ResponseWriter, r *http.Request) {
	var req service.EnquiryInput
	if !decodeJSON(w, r, &req) {
		return
	}
	enquiry, err := h.Enquiries.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, enquiry)
}

type newsletterRequest struct {
	Email string `json:"email"`
}

func (h *Handler) subscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.Newsletter.Subscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

func (h *Handler) unsubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Newsletter.Unsubscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// createOrder places an order. A reference to a missing product
// rejects the whole order and the response names the unknown ids.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderInput
	if !decodeJSON(w, r, &req) {
		return
	}
	order, items, err := h.Orders.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"order": order,
		"items": items,
	})
}

// paymentRequest initiates a payment for an order. Amount and
// currency are optional: when the client sends them they are checked
// against the stored order before anything reaches the gateway.
type paymentRequest struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Notes    string `json:"notes"`
}

// paymentResponse is the checkout contract: the charged order and
// amount alongside the gateway session.
type paymentResponse struct {
	OrderID  string         `json:"orderId"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Payment  payment.Intent `json:"payment"`
}

// createPayment starts a gateway payment for a pending order. The
// charged amount always comes from the stored order; a client-supplied
// amount is only accepted as a confirmation of that total.
func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		writeJSONError(w, http.StatusBadRequest, "order_id is required")
		return
	}
	if req.Amount < 0 {
		writeJSONError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	order, _, err := h.Orders.Get(r.Context(), req.OrderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Amount != 0 && req.Amount != order.TotalCents {
		writeJSONError(w, http.StatusBadRequest, "amount does not match the order total")
		return
	}

	description := req.Notes
	if description == "" {
		description = "Club store order"
	}

	intent, err := h.Payments.CreateIntent(r.Context(), payment.IntentRequest{
		AmountCents: order.TotalCents,
		Currency:    currency,
		Description: description,
		Reference:   order.ID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{
		OrderID:  order.ID,
		Amount:   order.TotalCents,
		Currency: currency,
		Payment:  intent,
	})
}
