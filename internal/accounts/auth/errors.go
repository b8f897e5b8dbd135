// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import "github.com/wh64dev/wh64-api/internal/platform/apperr"

// # Error Taxonomy
//
// Every recoverable failure of the accounts core is one of these sentinels.
// Token failures stay distinguishable by Code for logging and tests, but all
// map to a plain 401 so the boundary never leaks which check failed.

var (
	// ErrAuthenticationFailed collapses unknown-username and wrong-password
	// into a single outcome to prevent account enumeration.
	ErrAuthenticationFailed = apperr.Unauthorized("Invalid username or password")

	// ErrInvalidToken is returned when the signature, issuer, or audience
	// check fails.
	ErrInvalidToken = apperr.UnauthorizedCode("TOKEN_INVALID", "Token is not valid")

	// ErrExpiredToken is returned when the token is past its expiry.
	ErrExpiredToken = apperr.UnauthorizedCode("TOKEN_EXPIRED", "Token has expired")

	// ErrRevokedToken is returned when a newer token lineage exists for the
	// account (or the account is gone). Issuing any token invalidates every
	// token minted before it.
	ErrRevokedToken = apperr.UnauthorizedCode("TOKEN_REVOKED", "Token has been revoked")

	// ErrAlreadyVerified rejects verification requests for verified accounts.
	ErrAlreadyVerified = apperr.ForbiddenCode("ALREADY_VERIFIED", "Account is already verified")

	// ErrCodePending rejects a new code while an unexpired one is outstanding.
	ErrCodePending = apperr.ForbiddenCode("CODE_PENDING", "A verification code was already sent")

	// ErrCodeMismatch covers both "no code stored" and "wrong code".
	ErrCodeMismatch = apperr.ForbiddenCode("CODE_MISMATCH", "Verification code does not match")

	// ErrCodeExpired is returned when the stored code is past its window.
	// The stale row is removed as a side effect.
	ErrCodeExpired = apperr.ForbiddenCode("CODE_EXPIRED", "Verification code has expired")
)
