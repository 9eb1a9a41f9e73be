// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	if _, err := c.Get(context.Background(), "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get absent key error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "short", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired key error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("deleted key error = %v, want ErrCacheMiss", err)
	}
	// Deleting an absent key is fine.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	_ = c.Close()

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get on closed cache error = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set on closed cache error = %v, want ErrCacheClosed", err)
	}
}

func TestRevalidator_RoundTripAndInvalidate(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	r := NewRevalidator(c, time.Minute)
	ctx := context.Background()

	type page struct {
		Title string `json:"title"`
	}

	r.SetJSON(ctx, "/events", page{Title: "Events"})

	var got page
	if err := r.GetJSON(ctx, "/events", &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got.Title != "Events" {
		t.Errorf("Title = %q, want %q", got.Title, "Events")
	}

	r.Revalidate(ctx, "/events", "/")

	if err := r.GetJSON(ctx, "/events", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("after revalidate error = %v, want ErrCacheMiss", err)
	}
}
