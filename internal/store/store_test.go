// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "clubsite-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() { _ = db.Close() }
}

func TestCreateAndGetUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	created, err := q.CreateUser(ctx, CreateUserParams{
		ID:           uuid.New().String(),
		Name:         "Jordan Player",
		Email:        "jordan@example.com",
		Phone:        "+40711111111",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID == "" {
		t.Error("created user has empty id")
	}

	found, err := q.GetUserByEmail(ctx, "jordan@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if found.ID != created.ID || found.Name != "Jordan Player" {
		t.Errorf("GetUserByEmail = %+v, want created user", found)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	params := CreateUserParams{
		ID: uuid.New().String(), Name: "A", Email: "dup@example.com",
		PasswordHash: "h", CreatedAt: now, UpdatedAt: now,
	}
	if _, err := q.CreateUser(ctx, params); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	params.ID = uuid.New().String()
	if _, err := q.CreateUser(ctx, params); err == nil {
		t.Fatal("duplicate email should violate unique constraint")
	}
}

func TestVerificationUpsert(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	if err := q.UpsertVerification(ctx, UpsertVerificationParams{
		Address: "+40700000001", Code: "111111", ExpiresAt: now.Add(10 * time.Minute), Now: now,
	}); err != nil {
		t.Fatalf("UpsertVerification: %v", err)
	}

	// Mark verified, then re-issue: verified_at must be reset.
	if err := q.MarkVerificationVerified(ctx, "+40700000001", now); err != nil {
		t.Fatalf("MarkVerificationVerified: %v", err)
	}
	if err := q.UpsertVerification(ctx, UpsertVerificationParams{
		Address: "+40700000001", Code: "222222", ExpiresAt: now.Add(10 * time.Minute), Now: now,
	}); err != nil {
		t.Fatalf("UpsertVerification (re-issue): %v", err)
	}

	v, err := q.GetVerification(ctx, "+40700000001")
	if err != nil {
		t.Fatalf("GetVerification: %v", err)
	}
	if v.Code != "222222" {
		t.Errorf("Code = %q, want re-issued code", v.Code)
	}
	if v.VerifiedAt.Valid {
		t.Error("re-issue should clear verified_at")
	}

	// There must still be exactly one row for the address.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM verifications WHERE address = ?`, "+40700000001").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for address = %d, want 1", count)
	}
}

func TestDeleteVerification_AbsentIsNoError(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	if err := q.DeleteVerification(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("DeleteVerification of absent record: %v", err)
	}
}

func TestCommitteeOrdering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	// Insert out of order with equal creation times.
	for _, order := range []int64{30, 10, 20} {
		if _, err := q.CreateCommitteeMember(ctx, CreateCommitteeMemberParams{
			ID: uuid.New().String(), Name: "Member", DisplayOrder: order,
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatalf("CreateCommitteeMember: %v", err)
		}
	}

	members, err := q.ListCommitteeMembers(ctx)
	if err != nil {
		t.Fatalf("ListCommitteeMembers: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	want := []int64{10, 20, 30}
	for i, m := range members {
		if m.DisplayOrder != want[i] {
			t.Errorf("members[%d].DisplayOrder = %d, want %d", i, m.DisplayOrder, want[i])
		}
	}
}

func TestCommitteeOrdering_TieBreakByCreation(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	base := time.Now()

	older, err := q.CreateCommitteeMember(ctx, CreateCommitteeMemberParams{
		ID: uuid.New().String(), Name: "Older", DisplayOrder: 5,
		CreatedAt: base.Add(-time.Hour), UpdatedAt: base,
	})
	if err != nil {
		t.Fatalf("CreateCommitteeMember: %v", err)
	}
	newer, err := q.CreateCommitteeMember(ctx, CreateCommitteeMemberParams{
		ID: uuid.New().String(), Name: "Newer", DisplayOrder: 5,
		CreatedAt: base, UpdatedAt: base,
	})
	if err != nil {
		t.Fatalf("CreateCommitteeMember: %v", err)
	}

	members, err := q.ListCommitteeMembers(ctx)
	if err != nil {
		t.Fatalf("ListCommitteeMembers: %v", err)
	}
	if members[0].ID != newer.ID || members[1].ID != older.ID {
		t.Error("equal display order should list newer member first")
	}
}

func TestInitSiteContent_Idempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	if err := q.InitSiteContent(ctx, InitSiteContentParams{
		ID: uuid.New().String(), Area: "home", Key: "hero.headline", Value: "X", Now: now,
	}); err != nil {
		t.Fatalf("InitSiteContent: %v", err)
	}

	// Second init with a different value must be a no-op.
	if err := q.InitSiteContent(ctx, InitSiteContentParams{
		ID: uuid.New().String(), Area: "home", Key: "hero.headline", Value: "Y", Now: now,
	}); err != nil {
		t.Fatalf("InitSiteContent (second): %v", err)
	}

	c, err := q.GetSiteContentByKey(ctx, "hero.headline")
	if err != nil {
		t.Fatalf("GetSiteContentByKey: %v", err)
	}
	if c.Value != "X" {
		t.Errorf("Value = %q, want original %q", c.Value, "X")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM site_content WHERE key = ?`, "hero.headline").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for key = %d, want 1", count)
	}
}

func TestUpsertSiteContent_Overwrites(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	for _, v := range []string{"first", "second"} {
		if err := q.UpsertSiteContent(ctx, UpsertSiteContentParams{
			ID: uuid.New().String(), Area: "home", Key: "about.text", Value: v, Now: now,
		}); err != nil {
			t.Fatalf("UpsertSiteContent: %v", err)
		}
	}

	c, err := q.GetSiteContentByKey(ctx, "about.text")
	if err != nil {
		t.Fatalf("GetSiteContentByKey: %v", err)
	}
	if c.Value != "second" {
		t.Errorf("Value = %q, want %q", c.Value, "second")
	}
}

func TestListExistingProductIDs(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	p, err := q.CreateProduct(ctx, CreateProductParams{
		ID: uuid.New().String(), Name: "Club Jersey", PriceCents: 4500,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	existing, err := q.ListExistingProductIDs(ctx, []string{p.ID, "missing-id"})
	if err != nil {
		t.Fatalf("ListExistingProductIDs: %v", err)
	}
	if !existing[p.ID] {
		t.Error("existing product id not reported")
	}
	if existing["missing-id"] {
		t.Error("missing product id reported as existing")
	}
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	sentinel := errors.New("boom")

	err := InTx(ctx, db, func(q *Queries) error {
		if _, err := q.CreateOrder(ctx, CreateOrderParams{
			ID: uuid.New().String(), CustomerName: "C", Email: "c@example.com",
			TotalCents: 100, Status: "pending", CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("InTx error = %v, want sentinel", err)
	}

	n, err := New(db).CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders: %v", err)
	}
	if n != 0 {
		t.Errorf("orders after rollback = %d, want 0", n)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	admin, err := New(db).GetAdminByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		t.Fatalf("GetAdminByUsername: %v", err)
	}
	if admin.PasswordHash == DefaultAdminPassword {
		t.Error("admin password must be stored hashed, not in cleartext")
	}
}
