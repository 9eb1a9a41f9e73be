// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/clubarena/clubsite-go/internal/cache"
)

// Page paths whose cached data is invalidated by mutating actions. The
// home page aggregates most sections, so it is revalidated alongside
// each section page.
const (
	PathHome      = "/"
	PathEvents    = "/events"
	PathTrainings = "/trainings"
	PathCamps     = "/camps"
	PathStore     = "/store"
	PathAbout     = "/about"
	PathDocuments = "/documents"
)

// Revalidation groups cache invalidation by site section so services
// name the section they changed rather than raw paths.
type Revalidation struct {
	reval *cache.Revalidator
}

// NewRevalidation wraps a cache revalidator.
func NewRevalidation(reval *cache.Revalidator) *Revalidation {
	return &Revalidation{reval: reval}
}

// Cache exposes the underlying revalidator for read-side caching.
func (r *Revalidation) Cache() *cache.Revalidator { return r.reval }

// Events invalidates the event pages.
func (r *Revalidation) Events(ctx context.Context) {
	r.reval.Revalidate(ctx, PathHome, PathEvents)
}

// Trainings invalidates the training pages.
func (r *Revalidation) Trainings(ctx context.Context) {
	r.reval.Revalidate(ctx, PathHome, PathTrainings)
}

// Camps invalidates the camp pages.
func (r *Revalidation) Camps(ctx context.Context) {
	r.reval.Revalidate(ctx, PathHome, PathCamps)
}

// Store invalidates the store pages.
func (r *Revalidation) Store(ctx context.Context) {
	r.reval.Revalidate(ctx, PathHome, PathStore)
}

// About invalidates the about page, which carries the committee list.
func (r *Revalidation) About(ctx context.Context) {
	r.reval.Revalidate(ctx, PathAbout)
}

// Documents invalidates the documents page.
func (r *Revalidation) Documents(ctx context.Context) {
	r.reval.Revalidate(ctx, PathDocuments)
}

// Content invalidates the page backed by a content area plus the home
// page. Areas map to paths by name, with "home" meaning the root.
func (r *Revalidation) Content(ctx context.Context, area string) {
	if area == "home" || area == "" {
		r.reval.Revalidate(ctx, PathHome)
		return
	}
	r.reval.Revalidate(ctx, PathHome, "/"+area)
}
