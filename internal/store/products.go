// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Product is a store item. Prices are integer minor units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"price_cents"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Rating      float64   `json:"rating"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const productColumns = `id, name, price_cents, description, image, category, rating, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.Image,
		&p.Category, &p.Rating, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createProduct = `
INSERT INTO products (id, name, price_cents, description, image, category, rating, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + productColumns

// CreateProductParams holds the fields for CreateProduct.
type CreateProductParams struct {
	ID          string
	Name        string
	PriceCents  int64
	Description string
	Image       string
	Category    string
	Rating      float64
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProduct inserts a new product row.
func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, createProduct,
		arg.ID, arg.Name, arg.PriceCents, arg.Description, arg.Image,
		arg.Category, arg.Rating, arg.Featured, arg.CreatedAt, arg.UpdatedAt)
	return scanProduct(row)
}

const getProductByID = `SELECT ` + productColumns + ` FROM products WHERE id = ?`

// GetProductByID fetches a product by id.
func (q *Queries) GetProductByID(ctx context.Context, id string) (Product, error) {
	return scanProduct(q.db.QueryRowContext(ctx, getProductByID, id))
}

const listProducts = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

const listProductsByCategory = `SELECT ` + productColumns + ` FROM products WHERE category = ? ORDER BY created_at DESC`

const listFeaturedProducts = `SELECT ` + productColumns + ` FROM products WHERE featured = 1 ORDER BY created_at DESC`

// ListProducts returns all products, newest first.
func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	return q.queryProducts(ctx, listProducts)
}

// ListProductsByCategory returns products in a category, newest first.
func (q *Queries) ListProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return q.queryProducts(ctx, listProductsByCategory, category)
}

// ListFeaturedProducts returns products flagged for the home page.
func (q *Queries) ListFeaturedProducts(ctx context.Context) ([]Product, error) {
	return q.queryProducts(ctx, listFeaturedProducts)
}

func (q *Queries) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListExistingProductIDs returns which of the given product ids exist.
// Used by order creation to validate references before any write.
func (q *Queries) ListExistingProductIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}
	query := `SELECT id FROM products WHERE id IN (?` +
		repeatPlaceholder(len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	existing := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

// repeatPlaceholder returns n copies of ", ?" for IN clauses.
func repeatPlaceholder(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += ", ?"
	}
	return s
}

const updateProduct = `
UPDATE products SET name = ?, price_cents = ?, description = ?, image = ?,
    category = ?, rating = ?, featured = ?, updated_at = ?
WHERE id = ?
RETURNING ` + productColumns

// UpdateProductParams holds the fields for UpdateProduct.
type UpdateProductParams struct {
	Name        string
	PriceCents  int64
	Description string
	Image       string
	Category    string
	Rating      float64
	Featured    bool
	UpdatedAt   time.Time
	ID          string
}

// UpdateProduct overwrites a product row.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, updateProduct,
		arg.Name, arg.PriceCents, arg.Description, arg.Image,
		arg.Category, arg.Rating, arg.Featured, arg.UpdatedAt, arg.ID)
	return scanProduct(row)
}

const deleteProduct = `DELETE FROM products WHERE id = ?`

// DeleteProduct removes a product row.
func (q *Queries) DeleteProduct(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteProduct, id)
	return err
}

const countProducts = `SELECT COUNT(*) FROM products`

// CountProducts returns the number of products.
func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProducts).Scan(&n)
	return n, err
}
