// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/wh64dev/wh64-api/internal/platform/dberr"
)

// Verifier drives the email verification flow: issuing time-boxed 6-digit
// codes, checking submissions, and flipping the account's verified flag.
//
// Codes are not secrets in the cryptographic sense (they expire in three
// minutes and are bound to one account), so they come from math/rand. The
// comparison is still constant-time to keep submission latency uniform.
type Verifier struct {
	accounts AccountRepository
	codes    VerificationCodeRepository
	email    EmailSender
	clock    Clock
	logger   *slog.Logger
}

// NewVerifier constructs a [Verifier].
func NewVerifier(accounts AccountRepository, codes VerificationCodeRepository, email EmailSender, clock Clock, logger *slog.Logger) *Verifier {
	return &Verifier{
		accounts: accounts,
		codes:    codes,
		email:    email,
		clock:    clock,
		logger:   logger,
	}
}

/*
Request issues a fresh verification code for the account and emails it.

A verified account cannot request a code, and an unexpired outstanding code
blocks a new one so the inbox cannot be flooded by repeated requests. An
expired leftover row is silently replaced.

Parameters:
  - context: context.Context
  - account: the account requesting verification

Returns:
  - error: ErrAlreadyVerified, ErrCodePending, storage or delivery failure
*/
func (verifier *Verifier) Request(context context.Context, account *Account) error {
	if account.Verified {
		return ErrAlreadyVerified
	}

	pending, err := verifier.codes.Find(context, account.ID)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return err
	}
	if err == nil && pending.ExpiresAt.After(verifier.clock.Now()) {
		return ErrCodePending
	}

	code := generateCode()
	expiresAt := verifier.clock.Now().Add(CodeValidity)

	if err := verifier.codes.Upsert(context, account.ID, code, expiresAt); err != nil {
		return err
	}

	subject := "Your verification code"
	body := fmt.Sprintf(
		"Your verification code is %s.\r\n\r\nIt expires in %d minutes. If you did not request this, ignore this message.\r\n",
		code, int(CodeValidity.Minutes()))

	if err := verifier.email.Send(context, account.Email, subject, body); err != nil {
		// The code stays stored; the client may retry delivery by waiting
		// out the pending window.
		return fmt.Errorf("verification_mail_failed: %w", err)
	}

	verifier.logger.Info("verification code sent", slog.String("account_id", account.ID))

	return nil
}

/*
Verify checks a submitted code against the stored one without consuming it.

Parameters:
  - context: context.Context
  - accountID: owner account id
  - submitted: decimal code from the client

Returns:
  - error: ErrCodeMismatch (also when no code is stored), ErrCodeExpired
    (the stale row is removed), or storage failure
*/
func (verifier *Verifier) Verify(context context.Context, accountID, submitted string) error {
	pending, err := verifier.codes.Find(context, accountID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return ErrCodeMismatch
		}
		return err
	}

	if !pending.ExpiresAt.After(verifier.clock.Now()) {
		if err := verifier.codes.Delete(context, accountID); err != nil {
			verifier.logger.Warn("failed to remove expired verification code",
				slog.String("account_id", accountID),
				slog.String("error", err.Error()))
		}
		return ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(submitted), []byte(pending.Code)) != 1 {
		return ErrCodeMismatch
	}

	return nil
}

/*
Confirm checks a submitted code, consumes it, and marks the account verified.

Parameters:
  - context: context.Context
  - accountID: owner account id
  - submitted: decimal code from the client

Returns:
  - error: any Verify failure, or storage failure while consuming
*/
func (verifier *Verifier) Confirm(context context.Context, accountID, submitted string) error {
	if err := verifier.Verify(context, accountID, submitted); err != nil {
		return err
	}

	if err := verifier.codes.Delete(context, accountID); err != nil {
		return err
	}

	if err := verifier.accounts.SetVerified(context, accountID, true); err != nil {
		return err
	}

	verifier.logger.Info("account verified", slog.String("account_id", accountID))

	return nil
}

/*
Exists reports whether the account currently has an unexpired pending code.

Parameters:
  - context: context.Context
  - accountID: owner account id

Returns:
  - bool: true when an unexpired code is outstanding
  - error: storage failure
*/
func (verifier *Verifier) Exists(context context.Context, accountID string) (bool, error) {
	pending, err := verifier.codes.Find(context, accountID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return pending.ExpiresAt.After(verifier.clock.Now()), nil
}

// generateCode produces a zero-padded decimal code of CodeLength digits.
func generateCode() string {
	limit := 1
	for i := 0; i < CodeLength; i++ {
		limit *= 10
	}

	return fmt.Sprintf("%0*d", CodeLength, rand.IntN(limit))
}
