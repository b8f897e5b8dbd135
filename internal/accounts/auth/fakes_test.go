// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wh64dev/wh64-api/internal/platform/dberr"
)

// # In-Memory Test Doubles
//
// The fakes honor the same contracts as the Postgres implementations,
// including dberr.ErrNotFound semantics, so the services under test cannot
// tell the difference.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(at time.Time) *fakeClock { return &fakeClock{now: at} }

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

type fakeAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: make(map[string]*Account)}
}

func (repository *fakeAccountRepository) Insert(_ context.Context, account *Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return dberr.Wrap(duplicateKeyError(), "Username or email is already registered")
		}
	}

	clone := *account
	repository.accounts[account.ID] = &clone

	return nil
}

func (repository *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, account := range repository.accounts {
		if account.Username == username {
			clone := *account
			return &clone, nil
		}
	}

	return nil, dberr.ErrNotFound
}

func (repository *fakeAccountRepository) FindByID(_ context.Context, id string) (*Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}

	clone := *account
	return &clone, nil
}

func (repository *fakeAccountRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return dberr.ErrNotFound
	}

	stamp := at
	account.LastLogin = &stamp

	return nil
}

func (repository *fakeAccountRepository) UpdateEmail(_ context.Context, id, email string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return dberr.ErrNotFound
	}

	account.Email = email
	account.Verified = false

	return nil
}

func (repository *fakeAccountRepository) UpdatePassword(_ context.Context, id, passwordHash, salt string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return dberr.ErrNotFound
	}

	account.PasswordHash = passwordHash
	account.Salt = salt

	return nil
}

func (repository *fakeAccountRepository) SetVerified(_ context.Context, id string, verified bool) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return dberr.ErrNotFound
	}

	account.Verified = verified

	return nil
}

func (repository *fakeAccountRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.accounts[id]; !ok {
		return dberr.ErrNotFound
	}

	delete(repository.accounts, id)

	return nil
}

type fakeCodeRepository struct {
	mu        sync.Mutex
	codes     map[string]*VerificationCode
	deleteErr error
}

func newFakeCodeRepository() *fakeCodeRepository {
	return &fakeCodeRepository{codes: make(map[string]*VerificationCode)}
}

func (repository *fakeCodeRepository) Upsert(_ context.Context, accountID, code string, expiresAt time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.codes[accountID] = &VerificationCode{AccountID: accountID, Code: code, ExpiresAt: expiresAt}

	return nil
}

func (repository *fakeCodeRepository) Find(_ context.Context, accountID string) (*VerificationCode, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	record, ok := repository.codes[accountID]
	if !ok {
		return nil, dberr.ErrNotFound
	}

	clone := *record
	return &clone, nil
}

func (repository *fakeCodeRepository) Delete(_ context.Context, accountID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.deleteErr != nil {
		return repository.deleteErr
	}

	delete(repository.codes, accountID)

	return nil
}

type fakeEmailSender struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (sender *fakeEmailSender) Send(_ context.Context, to, subject, body string) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()

	if sender.failWith != nil {
		return sender.failWith
	}

	sender.sent = append(sender.sent, sentMail{to: to, subject: subject, body: body})

	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func duplicateKeyError() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "account_username_key"}
}
