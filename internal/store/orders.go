// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Order is a placed store order.
type Order struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	TotalCents   int64     `json:"total_cents"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrderItem is a product line within an order. PriceCents is the price
// at purchase time, not the current product price.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

const orderColumns = `id, customer_name, email, phone, address, total_cents, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.Email, &o.Phone, &o.Address,
		&o.TotalCents, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const createOrder = `
INSERT INTO orders (id, customer_name, email, phone, address, total_cents, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + orderColumns

// CreateOrderParams holds the fields for CreateOrder.
type CreateOrderParams struct {
	ID           string
	CustomerName string
	Email        string
	Phone        string
	Address      string
	TotalCents   int64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateOrder inserts an order row. Callers inserting items as well
// must run both inserts inside InTx.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRowContext(ctx, createOrder,
		arg.ID, arg.CustomerName, arg.Email, arg.Phone, arg.Address,
		arg.TotalCents, arg.Status, arg.CreatedAt, arg.UpdatedAt)
	return scanOrder(row)
}

const createOrderItem = `
INSERT INTO order_items (id, order_id, product_id, quantity, price_cents)
VALUES (?, ?, ?, ?, ?)
`

// CreateOrderItemParams holds the fields for CreateOrderItem.
type CreateOrderItemParams struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int64
	PriceCents int64
}

// CreateOrderItem inserts an order line row.
func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error {
	_, err := q.db.ExecContext(ctx, createOrderItem,
		arg.ID, arg.OrderID, arg.ProductID, arg.Quantity, arg.PriceCents)
	return err
}

const getOrderByID = `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`

// GetOrderByID fetches an order by id.
func (q *Queries) GetOrderByID(ctx context.Context, id string) (Order, error) {
	return scanOrder(q.db.QueryRowContext(ctx, getOrderByID, id))
}

const listOrders = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

// ListOrders returns all orders, newest first.
func (q *Queries) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := q.db.QueryContext(ctx, listOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const listOrderItems = `
SELECT id, order_id, product_id, quantity, price_cents
FROM order_items WHERE order_id = ?
`

// ListOrderItems returns the lines of an order.
func (q *Queries) ListOrderItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := q.db.QueryContext(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders SET status = ?, updated_at = ? WHERE id = ?
RETURNING ` + orderColumns

// UpdateOrderStatusParams holds the fields for UpdateOrderStatus.
type UpdateOrderStatusParams struct {
	Status    string
	UpdatedAt time.Time
	ID        string
}

// UpdateOrderStatus changes the order status.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(q.db.QueryRowContext(ctx, updateOrderStatus, arg.Status, arg.UpdatedAt, arg.ID))
}

const deleteOrder = `DELETE FROM orders WHERE id = ?`

// DeleteOrder removes an order and, via cascade, its items.
func (q *Queries) DeleteOrder(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteOrder, id)
	return err
}

const countOrders = `SELECT COUNT(*) FROM orders`

// CountOrders returns the number of orders.
func (q *Queries) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countOrders).Scan(&n)
	return n, err
}
