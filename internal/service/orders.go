// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// OrderService creates and manages store orders. Order creation is
// all-or-nothing: the order row and every item row are written in one
// transaction, and a single unknown product id rejects the whole order.
type OrderService struct {
	db      *sql.DB
	queries *store.Queries
	audit   *AuditService
}

// NewOrderService creates an OrderService. The database handle is
// needed for the order-plus-items transaction.
func NewOrderService(db *sql.DB, audit *AuditService) *OrderService {
	return &OrderService{db: db, queries: store.New(db), audit: audit}
}

// OrderItemInput is one product line of an order submission.
type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderInput holds an order submission from the store checkout.
type CreateOrderInput struct {
	CustomerName string           `json:"customer_name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	Items        []OrderItemInput `json:"items"`
}

func (in *CreateOrderInput) validate() error {
	if in.CustomerName == "" {
		return &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	}
	if in.Email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if len(in.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "order must contain at least one item"}
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return &ValidationError{Field: "items", Reason: "item product_id must not be empty"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: "items", Reason: "item quantity must be at least 1"}
		}
	}
	return nil
}

// Create places an order. Every referenced product must exist; if any
// are missing, the order is rejected with an IntegrityError naming the
// missing ids and nothing is written. Item prices are captured from the
// catalogue at purchase time.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (store.Order, []store.OrderItem, error) {
	if err := in.validate(); err != nil {
		return store.Order{}, nil, err
	}

	var (
		order store.Order
		items []store.OrderItem
	)
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		ids := make([]string, 0, len(in.Items))
		for _, item := range in.Items {
			ids = append(ids, item.ProductID)
		}
		existing, err := q.ListExistingProductIDs(ctx, ids)
		if err != nil {
			return err
		}

		var missing []string
		for _, id := range ids {
			if !existing[id] {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return &IntegrityError{MissingProductIDs: missing}
		}

		now := time.Now()
		orderID := uuid.New().String()

		var total int64
		lines := make([]store.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			product, err := q.GetProductByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			total += product.PriceCents * item.Quantity
			lines = append(lines, store.OrderItem{
				ID:         uuid.New().String(),
				OrderID:    orderID,
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				PriceCents: product.PriceCents,
			})
		}

		order, err = q.CreateOrder(ctx, store.CreateOrderParams{
			ID:           orderID,
			CustomerName: in.CustomerName,
			Email:        in.Email,
			Phone:        in.Phone,
			Address:      in.Address,
			TotalCents:   total,
			Status:       model.OrderStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := q.CreateOrderItem(ctx, store.CreateOrderItemParams{
				ID:         line.ID,
				OrderID:    line.OrderID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				PriceCents: line.PriceCents,
			}); err != nil {
				return err
			}
		}
		items = lines
		return nil
	})
	if err != nil {
		return store.Order{}, nil, err
	}

	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryCommerce, "order placed",
		map[string]any{"id": order.ID, "total_cents": order.TotalCents, "items": len(items)})
	return order, items, nil
}

// Get fetches an order with its items.
func (s *OrderService) Get(ctx context.Context, id string) (store.Order, []store.OrderItem, error) {
	order, err := s.queries.GetOrderByID(ctx, id)
	if err != nil {
		return store.Order{}, nil, notFound("order", id, err)
	}
	items, err := s.queries.ListOrderItems(ctx, id)
	if err != nil {
		return store.Order{}, nil, err
	}
	return order, items, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]store.Order, error) {
	return s.queries.ListOrders(ctx)
}

// validOrderTransitions maps each status to the statuses it may move
// to. Terminal statuses have no entries.
var validOrderTransitions = map[string][]string{
	model.OrderStatusPending: {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:    {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped: {model.OrderStatusDelivered},
}

// UpdateStatus moves an order along its lifecycle. Invalid transitions
// are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (store.Order, error) {
	order, err := s.queries.GetOrderByID(ctx, id)
	if err != nil {
		return store.Order{}, notFound("order", id, err)
	}

	allowed := false
	for _, next := range validOrderTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return store.Order{}, &ValidationError{
			Field:  "status",
			Reason: "cannot move from " + order.Status + " to " + status,
		}
	}

	updated, err := s.queries.UpdateOrderStatus(ctx, store.UpdateOrderStatusParams{
		Status:    status,
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		return store.Order{}, err
	}

	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryCommerce, "order status changed",
		map[string]any{"id": id, "from": order.Status, "to": status})
	return updated, nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetOrderByID(ctx, id); err != nil {
		return notFound("order", id, err)
	}
	return s.queries.DeleteOrder(ctx, id)
}

// IsIntegrityError reports whether err is an order integrity rejection
// and returns the missing ids when it is.
func IsIntegrityError(err error) ([]string, bool) {
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie.MissingProductIDs, true
	}
	return nil, false
}
