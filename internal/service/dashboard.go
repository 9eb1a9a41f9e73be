// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/store"
)

// feedLimit is the number of entries shown in the dashboard activity
// feed.
const feedLimit = 5

// DashboardService aggregates the admin dashboard numbers and activity
// feed. Sections are loaded in parallel; a failed section degrades to
// its zero value so one broken query never blanks the whole dashboard.
type DashboardService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(queries *store.Queries, logger *slog.Logger) *DashboardService {
	return &DashboardService{queries: queries, logger: logger}
}

// DashboardCounts are the headline numbers.
type DashboardCounts struct {
	UpcomingEvents int64 `json:"upcoming_events"`
	Products       int64 `json:"products"`
	Orders         int64 `json:"orders"`
	Enquiries      int64 `json:"enquiries"`
	Users          int64 `json:"users"`
}

// FeedEntry is one row of the recent-activity feed.
type FeedEntry struct {
	Kind      string    `json:"kind"` // "event", "enquiry" or "order"
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard is the aggregated dashboard payload.
type Dashboard struct {
	Counts DashboardCounts `json:"counts"`
	Feed   []FeedEntry     `json:"feed"`
}

// Load gathers the dashboard concurrently. Individual failures are
// logged and replaced with zero values; Load itself only fails when the
// context is cancelled.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	var (
		counts    DashboardCounts
		events    []store.Event
		enquiries []store.Enquiry
		orders    []store.Order
	)

	g, gctx := errgroup.WithContext(ctx)

	count := func(name string, dest *int64, fetch func(context.Context) (int64, error)) func() error {
		return func() error {
			n, err := fetch(gctx)
			*dest = DegradeValue(s.logger, name, n, err)
			return nil
		}
	}

	g.Go(count("upcoming event count", &counts.UpcomingEvents, func(ctx context.Context) (int64, error) {
		return s.queries.CountEventsByStatus(ctx, model.EventStatusUpcoming)
	}))
	g.Go(count("product count", &counts.Products, s.queries.CountProducts))
	g.Go(count("order count", &counts.Orders, s.queries.CountOrders))
	g.Go(count("enquiry count", &counts.Enquiries, s.queries.CountEnquiries))
	g.Go(count("user count", &counts.Users, s.queries.CountUsers))

	g.Go(func() error {
		rows, err := s.queries.ListRecentEvents(gctx, feedLimit)
		events = DegradeList(s.logger, "recent events", rows, err)
		return nil
	})
	g.Go(func() error {
		rows, err := s.queries.ListRecentEnquiries(gctx, feedLimit)
		enquiries = DegradeList(s.logger, "recent enquiries", rows, err)
		return nil
	})
	g.Go(func() error {
		rows, err := s.queries.ListOrders(gctx)
		orders = DegradeList(s.logger, "recent orders", rows, err)
		if len(orders) > feedLimit {
			orders = orders[:feedLimit]
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Counts: counts,
		Feed:   mergeFeed(events, enquiries, orders),
	}, nil
}

// mergeFeed interleaves the recent entities into one reverse
// chronological feed capped at feedLimit entries.
func mergeFeed(events []store.Event, enquiries []store.Enquiry, orders []store.Order) []FeedEntry {
	entries := make([]FeedEntry, 0, len(events)+len(enquiries)+len(orders))
	for _, e := range events {
		entries = append(entries, FeedEntry{Kind: "event", ID: e.ID, Title: e.Title, CreatedAt: e.CreatedAt})
	}
	for _, e := range enquiries {
		entries = append(entries, FeedEntry{Kind: "enquiry", ID: e.ID, Title: e.Name, CreatedAt: e.CreatedAt})
	}
	for _, o := range orders {
		entries = append(entries, FeedEntry{Kind: "order", ID: o.ID, Title: o.CustomerName, CreatedAt: o.CreatedAt})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > feedLimit {
		entries = entries[:feedLimit]
	}
	return entries
}
