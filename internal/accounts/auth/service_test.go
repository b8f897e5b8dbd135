// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
	"github.com/wh64dev/wh64-api/internal/platform/dberr"
)

func newTestService() (*Service, *fakeAccountRepository, *fakeClock) {
	repository := newFakeAccountRepository()
	clock := newFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	service := NewService(repository, NewHasher(16, 8), clock, testLogger())

	return service, repository, clock
}

func mustRegister(t *testing.T, service *Service, username, email, password string) *Account {
	t.Helper()

	account, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	return account
}

func TestServiceRegister(t *testing.T) {
	service, repository, clock := newTestService()

	account := mustRegister(t, service, "yuna", "yuna@wh64.dev", "under-the-bridge-7")

	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "yuna", account.Username)
	assert.Equal(t, clock.Now(), account.Created)
	assert.False(t, account.Verified)
	assert.Nil(t, account.LastLogin)
	assert.NotEqual(t, "under-the-bridge-7", account.PasswordHash, "password must never be stored in plaintext")
	assert.NotEmpty(t, account.Salt)

	stored, err := repository.FindByUsername(context.Background(), "yuna")
	require.NoError(t, err)
	assert.Equal(t, account.ID, stored.ID)
}

func TestServiceRegisterSaltsAreUnique(t *testing.T) {
	service, _, _ := newTestService()

	first := mustRegister(t, service, "alpha", "alpha@wh64.dev", "same-password-9")
	second := mustRegister(t, service, "beta", "beta@wh64.dev", "same-password-9")

	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.PasswordHash, second.PasswordHash,
		"identical passwords must produce distinct digests via per-account salts")
}

func TestServiceRegisterDuplicate(t *testing.T) {
	service, _, _ := newTestService()
	mustRegister(t, service, "yuna", "yuna@wh64.dev", "under-the-bridge-7")

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "yuna",
		Email:    "other@wh64.dev",
		Password: "whatever-123",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestServiceAuthenticate(t *testing.T) {
	service, _, _ := newTestService()
	registered := mustRegister(t, service, "yuna", "yuna@wh64.dev", "under-the-bridge-7")

	t.Run("correct credentials", func(t *testing.T) {
		account, err := service.Authenticate(context.Background(), "yuna", "under-the-bridge-7")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), "yuna", "under-the-bridge-8")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("unknown username is indistinguishable", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), "nobody", "under-the-bridge-7")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestServiceUpdateEmailClearsVerified(t *testing.T) {
	service, repository, _ := newTestService()
	account := mustRegister(t, service, "yuna", "yuna@wh64.dev", "under-the-bridge-7")

	require.NoError(t, repository.SetVerified(context.Background(), account.ID, true))

	require.NoError(t, service.UpdateEmail(context.Background(), account.ID, "new@wh64.dev"))

	updated, err := service.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@wh64.dev", updated.Email)
	assert.False(t, updated.Verified, "changing the address must force re-verification")
}

func TestServiceChangePassword(t *testing.T) {
	service, _, _ := newTestService()
	account := mustRegister(t, service, "yuna", "yuna@wh64.dev", "under-the-bridge-7")

	t.Run("wrong current password", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), account.ID, "wrong", "brand-new-pass-1")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("rotates digest and salt", func(t *testing.T) {
		before, err := service.FindByID(context.Background(), account.ID)
		require.NoError(t, err)

		require.NoError(t, service.ChangePassword(context.Background(), account.ID, "under-the-bridge-7", "brand-new-pass-1"))

		after, err := service.FindByID(context.Background(), account.ID)
		require.NoError(t, err)
		assert.NotEqual(t, before.Salt, after.Salt)
		assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

		_, err = service.Authenticate(context.Background(), "yuna", "brand-new-pass-1")
		assert.NoError(t, err)

		_, err = service.Authenticate(context.Background(), "yuna", "under-the-bridge-7")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestServiceDelete(t *testing.T) {
	service, _, _ := newTestService()
	account := mustRegister(t, service, "yuna", "yuna@wh64.dev", "under-the-bridge-7")

	require.NoError(t, service.Delete(context.Background(), account.ID))

	_, err := service.FindByID(context.Background(), account.ID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	assert.ErrorIs(t, service.Delete(context.Background(), account.ID), dberr.ErrNotFound)
}
