// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier() (*Verifier, *fakeAccountRepository, *fakeCodeRepository, *fakeEmailSender, *fakeClock) {
	accounts := newFakeAccountRepository()
	codes := newFakeCodeRepository()
	sender := &fakeEmailSender{}
	clock := newFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	verifier := NewVerifier(accounts, codes, sender, clock, testLogger())

	return verifier, accounts, codes, sender, clock
}

func seedUnverified(t *testing.T, accounts *fakeAccountRepository) *Account {
	t.Helper()

	account := &Account{
		ID:       "0195a000-0000-7000-8000-000000000002",
		Username: "yuna",
		Email:    "yuna@wh64.dev",
		Verified: false,
	}
	require.NoError(t, accounts.Insert(context.Background(), account))

	return account
}

func TestVerifierRequest(t *testing.T) {
	verifier, accounts, codes, sender, clock := newTestVerifier()
	account := seedUnverified(t, accounts)

	require.NoError(t, verifier.Request(context.Background(), account))

	stored, err := codes.Find(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Code, CodeLength)
	assert.Equal(t, clock.Now().Add(CodeValidity), stored.ExpiresAt)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "yuna@wh64.dev", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, stored.Code)
}

func TestVerifierRequestAlreadyVerified(t *testing.T) {
	verifier, accounts, _, sender, _ := newTestVerifier()
	account := seedUnverified(t, accounts)
	account.Verified = true

	err := verifier.Request(context.Background(), account)

	assert.ErrorIs(t, err, ErrAlreadyVerified)
	assert.Empty(t, sender.sent)
}

func TestVerifierRequestPendingBlocks(t *testing.T) {
	verifier, accounts, _, sender, clock := newTestVerifier()
	account := seedUnverified(t, accounts)

	require.NoError(t, verifier.Request(context.Background(), account))

	err := verifier.Request(context.Background(), account)
	assert.ErrorIs(t, err, ErrCodePending)
	assert.Len(t, sender.sent, 1, "no second mail while a code is pending")

	// Once the window lapses a new request goes through.
	clock.Advance(CodeValidity + time.Second)

	require.NoError(t, verifier.Request(context.Background(), account))
	assert.Len(t, sender.sent, 2)
}

func TestVerifierRequestMailFailureKeepsCode(t *testing.T) {
	verifier, accounts, codes, sender, _ := newTestVerifier()
	account := seedUnverified(t, accounts)
	sender.failWith = errors.New("smtp unreachable")

	err := verifier.Request(context.Background(), account)
	require.Error(t, err)

	_, findErr := codes.Find(context.Background(), account.ID)
	assert.NoError(t, findErr, "the stored code survives a delivery failure")
}

func TestVerifierVerify(t *testing.T) {
	verifier, accounts, codes, _, clock := newTestVerifier()
	account := seedUnverified(t, accounts)

	require.NoError(t, verifier.Request(context.Background(), account))
	stored, err := codes.Find(context.Background(), account.ID)
	require.NoError(t, err)

	t.Run("correct code", func(t *testing.T) {
		assert.NoError(t, verifier.Verify(context.Background(), account.ID, stored.Code))
	})

	t.Run("verify does not consume", func(t *testing.T) {
		assert.NoError(t, verifier.Verify(context.Background(), account.ID, stored.Code))
	})

	t.Run("wrong code", func(t *testing.T) {
		wrong := "000000"
		if stored.Code == wrong {
			wrong = "000001"
		}
		assert.ErrorIs(t, verifier.Verify(context.Background(), account.ID, wrong), ErrCodeMismatch)
	})

	t.Run("no code stored", func(t *testing.T) {
		err := verifier.Verify(context.Background(), "missing-account", "123456")
		assert.ErrorIs(t, err, ErrCodeMismatch)
	})

	t.Run("expired code is removed", func(t *testing.T) {
		clock.Advance(CodeValidity + time.Second)

		err := verifier.Verify(context.Background(), account.ID, stored.Code)
		assert.ErrorIs(t, err, ErrCodeExpired)

		exists, err := verifier.Exists(context.Background(), account.ID)
		require.NoError(t, err)
		assert.False(t, exists, "the stale row must be gone after an expired attempt")
	})
}

func TestVerifierVerifyExpiredCleanupFailure(t *testing.T) {
	verifier, accounts, codes, _, clock := newTestVerifier()
	account := seedUnverified(t, accounts)

	require.NoError(t, verifier.Request(context.Background(), account))
	stored, err := codes.Find(context.Background(), account.ID)
	require.NoError(t, err)

	clock.Advance(CodeValidity + time.Second)
	codes.deleteErr = errors.New("storage unavailable")

	// A failed cleanup of the stale row must not mask the expiry outcome.
	err = verifier.Verify(context.Background(), account.ID, stored.Code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifierConfirm(t *testing.T) {
	verifier, accounts, codes, _, _ := newTestVerifier()
	account := seedUnverified(t, accounts)

	require.NoError(t, verifier.Request(context.Background(), account))
	stored, err := codes.Find(context.Background(), account.ID)
	require.NoError(t, err)

	require.NoError(t, verifier.Confirm(context.Background(), account.ID, stored.Code))

	updated, err := accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, updated.Verified)

	exists, err := verifier.Exists(context.Background(), account.ID)
	require.NoError(t, err)
	assert.False(t, exists, "confirm consumes the code")

	// Replay of the consumed code fails.
	err = verifier.Confirm(context.Background(), account.ID, stored.Code)
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestVerifierConfirmWrongCodeLeavesUnverified(t *testing.T) {
	verifier, accounts, codes, _, _ := newTestVerifier()
	account := seedUnverified(t, accounts)

	require.NoError(t, verifier.Request(context.Background(), account))
	stored, err := codes.Find(context.Background(), account.ID)
	require.NoError(t, err)

	wrong := "000000"
	if stored.Code == wrong {
		wrong = "000001"
	}

	assert.ErrorIs(t, verifier.Confirm(context.Background(), account.ID, wrong), ErrCodeMismatch)

	updated, err := accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.False(t, updated.Verified)

	exists, err := verifier.Exists(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, exists, "a failed confirm must not consume the code")
}

func TestVerifierExists(t *testing.T) {
	verifier, accounts, _, _, clock := newTestVerifier()
	account := seedUnverified(t, accounts)

	exists, err := verifier.Exists(context.Background(), account.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, verifier.Request(context.Background(), account))

	exists, err = verifier.Exists(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	clock.Advance(CodeValidity + time.Second)

	exists, err = verifier.Exists(context.Background(), account.ID)
	require.NoError(t, err)
	assert.False(t, exists, "an expired row does not count as pending")
}

func TestGenerateCodeShape(t *testing.T) {
	for i := 0; i < 256; i++ {
		code := generateCode()
		require.Len(t, code, CodeLength)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code %q must be decimal digits", code)
		}
	}
}
