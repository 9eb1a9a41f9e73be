// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/clubarena/clubsite-go/internal/store"
)

func TestCommitteeList_Ordering(t *testing.T) {
	env := newTestEnv(t)
	committee := NewCommitteeService(env.queries, env.reval, env.audit)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	insert := func(name string, order int64, createdAt time.Time) {
		t.Helper()
		_, err := env.queries.CreateCommitteeMember(ctx, store.CreateCommitteeMemberParams{
			ID:           uuid.NewString(),
			Name:         name,
			Position:     "member",
			DisplayOrder: order,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		})
		require.NoError(t, err)
	}

	insert("newer-five", 5, base.Add(30*time.Minute))
	insert("chair", 1, base)
	insert("older-five", 5, base.Add(10*time.Minute))
	insert("treasurer", 2, base)

	members, err := committee.List(ctx)
	require.NoError(t, err)

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	// display_order ascending, newest first within the same order.
	require.Equal(t, []string{"chair", "treasurer", "newer-five", "older-five"}, names)
}

func TestCommitteeCRUD(t *testing.T) {
	env := newTestEnv(t)
	committee := NewCommitteeService(env.queries, env.reval, env.audit)
	ctx := context.Background()

	member, err := committee.Create(ctx, CommitteeMemberInput{
		Name:     "Ada",
		Position: "chair",
	})
	require.NoError(t, err)

	member, err = committee.Update(ctx, member.ID, CommitteeMemberInput{
		Name:         "Ada",
		Position:     "president",
		DisplayOrder: 1,
	})
	require.NoError(t, err)
	require.Equal(t, "president", member.Position)

	require.NoError(t, committee.Delete(ctx, member.ID))

	_, err = committee.Get(ctx, member.ID)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestCommitteeCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	committee := NewCommitteeService(env.queries, env.reval, env.audit)

	_, err := committee.Create(context.Background(), CommitteeMemberInput{Position: "chair"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
