// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import "time"

// # Session & Verification Constraints

const (
	// TokenValidity is the duration a session token remains valid.
	// Two hours: long enough for a browsing session, short enough that a
	// leaked token without a refresh expires the same morning.
	TokenValidity = 2 * time.Hour

	// CodeValidity is the duration an email verification code remains valid.
	// Three minutes forces codes to be consumed from a live inbox session.
	CodeValidity = 180 * time.Second

	// CodeLength is the number of decimal digits in a verification code.
	CodeLength = 6

	// DefaultSaltSize is the byte length of generated password salts.
	DefaultSaltSize = 16

	// DefaultHashIterations is the default round count for the iterated digest.
	DefaultHashIterations = 64
)
