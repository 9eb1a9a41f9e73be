// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clubarena/clubsite-go/internal/store"
)

func seedTestProduct(t *testing.T, env *testEnv, name string, priceCents int64) store.Product {
	t.Helper()
	products := NewProductService(env.queries, env.reval, env.audit)
	product, err := products.Create(context.Background(), ProductInput{
		Name:       name,
		PriceCents: priceCents,
		Category:   "kits",
	})
	require.NoError(t, err)
	return product
}

func TestOrderCreate_ComputesTotalFromStoredPrices(t *testing.T) {
	env := newTestEnv(t)
	orders := NewOrderService(env.db, env.audit)

	jersey := seedTestProduct(t, env, "Jersey", 4500)
	ball := seedTestProduct(t, env, "Ball", 2000)

	order, items, err := orders.Create(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Email:        "ada@example.com",
		Items: []OrderItemInput{
			{ProductID: jersey.ID, Quantity: 2},
			{ProductID: ball.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2*4500+2000, order.TotalCents)
	require.Equal(t, "pending", order.Status)
	require.Len(t, items, 2)

	// Line prices are captured at purchase time.
	for _, item := range items {
		if item.ProductID == jersey.ID {
			require.EqualValues(t, 4500, item.PriceCents)
		}
	}
}

func TestOrderCreate_MissingProductsRollBackEverything(t *testing.T) {
	env := newTestEnv(t)
	orders := NewOrderService(env.db, env.audit)
	jersey := seedTestProduct(t, env, "Jersey", 4500)

	_, _, err := orders.Create(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Email:        "ada@example.com",
		Items: []OrderItemInput{
			{ProductID: jersey.ID, Quantity: 1},
			{ProductID: "zzz-missing", Quantity: 1},
			{ProductID: "aaa-missing", Quantity: 1},
		},
	})

	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
	require.Equal(t, []string{"aaa-missing", "zzz-missing"}, integrity.MissingProductIDs)

	rows, err := env.queries.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows, "a rejected order must leave no rows behind")
}

func TestOrderCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	orders := NewOrderService(env.db, env.audit)

	var validation *ValidationError

	_, _, err := orders.Create(context.Background(), CreateOrderInput{
		Email: "ada@example.com",
		Items: []OrderItemInput{{ProductID: "p", Quantity: 1}},
	})
	require.ErrorAs(t, err, &validation)

	_, _, err = orders.Create(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Email:        "ada@example.com",
	})
	require.ErrorAs(t, err, &validation)
}

func TestOrderUpdateStatus_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	orders := NewOrderService(env.db, env.audit)
	jersey := seedTestProduct(t, env, "Jersey", 4500)

	ctx := context.Background()
	order, _, err := orders.Create(ctx, CreateOrderInput{
		CustomerName: "Ada",
		Email:        "ada@example.com",
		Items:        []OrderItemInput{{ProductID: jersey.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// pending may not jump straight to delivered.
	_, err = orders.UpdateStatus(ctx, order.ID, "delivered")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	order, err = orders.UpdateStatus(ctx, order.ID, "paid")
	require.NoError(t, err)
	require.Equal(t, "paid", order.Status)

	order, err = orders.UpdateStatus(ctx, order.ID, "shipped")
	require.NoError(t, err)

	order, err = orders.UpdateStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)
	require.Equal(t, "delivered", order.Status)

	// delivered is terminal.
	_, err = orders.UpdateStatus(ctx, order.ID, "cancelled")
	require.ErrorAs(t, err, &validation)
}

func TestOrderGet_NotFound(t *testing.T) {
	env := newTestEnv(t)
	orders := NewOrderService(env.db, env.audit)

	_, _, err := orders.Get(context.Background(), "nope")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestProductDelete_BlockedByOrderLines(t *testing.T) {
	env := newTestEnv(t)
	orders := NewOrderService(env.db, env.audit)
	products := NewProductService(env.queries, env.reval, env.audit)
	jersey := seedTestProduct(t, env, "Jersey", 4500)

	ctx := context.Background()
	_, _, err := orders.Create(ctx, CreateOrderInput{
		CustomerName: "Ada",
		Email:        "ada@example.com",
		Items:        []OrderItemInput{{ProductID: jersey.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = products.Delete(ctx, jersey.ID)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict), "delete of an ordered product should conflict, got %v", err)
}
