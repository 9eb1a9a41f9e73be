// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("summer-training-2026")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty hash")
	}

	valid, err := CheckPassword("summer-training-2026", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !valid {
		t.Fatal("correct password was rejected")
	}

	valid, err = CheckPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if valid {
		t.Fatal("wrong password was accepted")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if _, err := CheckPassword("anything", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("anything")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("freshly created hash should not need rehash")
	}
	// Old 64MB-parameter hash should be flagged.
	old := "$argon2id$v=19$m=65536,t=1,p=4$c29tZXNhbHQ$c29tZWtleQ"
	if !NeedsRehash(old) {
		t.Error("hash with old parameters should need rehash")
	}
	if !NeedsRehash("garbage") {
		t.Error("unparseable hash should need rehash")
	}
}
