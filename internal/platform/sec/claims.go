// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

// Package sec defines the session claim payload shared between the token
// issuer and the HTTP middleware chain.
//
// # Architecture
//
// Token signing and verification live in the accounts domain (the token
// lineage check needs the account store). This package only holds the claim
// structure so that middleware and handlers can consume an authenticated
// identity without importing the domain package.
package sec

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload embedded inside a session JWT.
//
// # Why custom claims?
//
// Carrying the username, email, and verified flag inside the token lets
// handlers render the authenticated identity without a database round trip.
// The revocation check in the token issuer is the only stateful step.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}
