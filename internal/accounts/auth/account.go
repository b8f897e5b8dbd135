// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package auth implements the account credential and session-trust core.

It covers the full identity lifecycle: salted iterated password hashing,
signed session tokens with server-enforced revocation, and time-boxed email
verification codes.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
transport dependencies; storage and email are reached only through the
contracts in store.go.
*/
package auth

import "time"

// # Domain Entities

// Account represents a registered account.
type Account struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Salt         string     `json:"-"` // Per-account random salt. Omitted for security.
	Created      time.Time  `json:"created"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Verified     bool       `json:"verified"`
}

// VerificationCode is a pending one-time email verification code.
//
// At most one outstanding code exists per account; requesting a new one
// replaces the stored row.
type VerificationCode struct {
	AccountID string    `json:"account_id"`
	Code      string    `json:"-"` // Never serialized; delivered by email only.
	ExpiresAt time.Time `json:"expires_at"`
}

// # Field Identifiers

// Field names for validation and identity mapping in the accounts domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCode            = "code"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
