// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"time"
)

// # Repository Contracts
//
// The service, token issuer, and verifier depend on these interfaces only.
// store_postgres.go provides the production implementation; tests substitute
// in-memory fakes.

// AccountRepository persists accounts.
type AccountRepository interface {
	// Insert stores a new account. A username or email collision surfaces
	// as an apperr conflict.
	Insert(context context.Context, account *Account) error

	// FindByUsername returns the account with the given username, or
	// dberr.ErrNotFound.
	FindByUsername(context context.Context, username string) (*Account, error)

	// FindByID returns the account with the given id, or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*Account, error)

	// UpdateLastLogin records the instant the latest token was issued.
	UpdateLastLogin(context context.Context, id string, at time.Time) error

	// UpdateEmail changes the account email and clears the verified flag.
	// The two writes happen in one statement so the flag can never survive
	// an address change.
	UpdateEmail(context context.Context, id, email string) error

	// UpdatePassword replaces the stored digest and salt together.
	UpdatePassword(context context.Context, id, passwordHash, salt string) error

	// SetVerified sets the email verification flag.
	SetVerified(context context.Context, id string, verified bool) error

	// Delete removes the account. Dependent verification codes go with it
	// via the schema's cascade.
	Delete(context context.Context, id string) error
}

// VerificationCodeRepository persists pending email verification codes,
// keyed by account id.
type VerificationCodeRepository interface {
	// Upsert stores a code for the account, replacing any previous one.
	Upsert(context context.Context, accountID, code string, expiresAt time.Time) error

	// Find returns the pending code for the account, or dberr.ErrNotFound.
	Find(context context.Context, accountID string) (*VerificationCode, error)

	// Delete removes the pending code, if any. Deleting a missing code is
	// not an error.
	Delete(context context.Context, accountID string) error
}

// EmailSender delivers verification mail.
type EmailSender interface {
	Send(context context.Context, to, subject, body string) error
}

// Clock abstracts time so expiry and revocation logic is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
