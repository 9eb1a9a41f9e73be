// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.queries, env.audit)
	ctx := context.Background()

	user, err := users.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	got, err := users.Authenticate(ctx, "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestUserAuthenticate_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.queries, env.audit)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Unknown account and wrong password fail identically.
	_, err = users.Authenticate(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.queries, env.audit)
	ctx := context.Background()

	in := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse battery"}
	_, err := users.Register(ctx, in)
	require.NoError(t, err)

	_, err = users.Register(ctx, in)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUserRegister_ShortPassword(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.queries, env.audit)

	_, err := users.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUserSetPassword(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.queries, env.audit)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, users.SetPassword(ctx, "ada@example.com", "an even longer phrase"))

	_, err = users.Authenticate(ctx, "ada@example.com", "correct horse battery")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "ada@example.com", "an even longer phrase")
	require.NoError(t, err)
}
