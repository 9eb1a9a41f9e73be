// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// ProductService manages the club store catalogue.
type ProductService struct {
	queries *store.Queries
	reval   *Revalidation
	audit   *AuditService
}

// NewProductService creates a ProductService.
func NewProductService(queries *store.Queries, reval *Revalidation, audit *AuditService) *ProductService {
	return &ProductService{queries: queries, reval: reval, audit: audit}
}

// ProductInput holds the editable fields of a product. PriceCents is in
// integer minor units.
type ProductInput struct {
	Name        string
	PriceCents  int64
	Description string
	Image       string
	Category    string
	Rating      float64
	Featured    bool
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.PriceCents < 0 {
		return &ValidationError{Field: "price_cents", Reason: "must not be negative"}
	}
	if in.Rating < 0 || in.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}
	return nil
}

// Create validates and stores a new product, then revalidates the
// store pages.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (store.Product, error) {
	if err := in.validate(); err != nil {
		return store.Product{}, err
	}

	now := time.Now()
	product, err := s.queries.CreateProduct(ctx, store.CreateProductParams{
		ID:          uuid.New().String(),
		Name:        in.Name,
		PriceCents:  in.PriceCents,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
		Rating:      in.Rating,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Product{}, err
	}

	s.reval.Store(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryCommerce, "product created",
		map[string]any{"id": product.ID, "name": product.Name})
	return product, nil
}

// Get fetches a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (store.Product, error) {
	product, err := s.queries.GetProductByID(ctx, id)
	if err != nil {
		return store.Product{}, notFound("product", id, err)
	}
	return product, nil
}

// List returns all products, newest first.
func (s *ProductService) List(ctx context.Context) ([]store.Product, error) {
	return s.queries.ListProducts(ctx)
}

// ListByCategory returns products in a category.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]store.Product, error) {
	return s.queries.ListProductsByCategory(ctx, category)
}

// ListFeatured returns products flagged for the home page.
func (s *ProductService) ListFeatured(ctx context.Context) ([]store.Product, error) {
	return s.queries.ListFeaturedProducts(ctx)
}

// Update validates and overwrites a product.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (store.Product, error) {
	if err := in.validate(); err != nil {
		return store.Product{}, err
	}

	product, err := s.queries.UpdateProduct(ctx, store.UpdateProductParams{
		Name:        in.Name,
		PriceCents:  in.PriceCents,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
		Rating:      in.Rating,
		Featured:    in.Featured,
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		return store.Product{}, notFound("product", id, err)
	}

	s.reval.Store(ctx)
	return product, nil
}

// Delete removes a product. A product referenced by existing order
// lines cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetProductByID(ctx, id); err != nil {
		return notFound("product", id, err)
	}
	if err := s.queries.DeleteProduct(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return &ConflictError{Entity: "product", Detail: "referenced by existing orders"}
		}
		return err
	}
	s.reval.Store(ctx)
	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryCommerce, "product deleted",
		map[string]any{"id": id})
	return nil
}
