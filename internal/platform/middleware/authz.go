// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
	"github.com/wh64dev/wh64-api/internal/platform/ctxutil"
	"github.com/wh64dev/wh64-api/internal/platform/respond"
	"github.com/wh64dev/wh64-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Verification includes the revocation check against the account store, so the
// concrete implementation lives in the accounts domain. Defining the interface
// here decouples the middleware from that package and lets tests inject mocks.
// The context carries the request deadline down to the account lookup.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*sec.SessionClaims, error)
}

// VerifierFunc adapts a plain function to the [TokenVerifier] interface.
type VerifierFunc func(ctx context.Context, tokenString string) (*sec.SessionClaims, error)

// VerifyToken implements [TokenVerifier].
func (fn VerifierFunc) VerifyToken(ctx context.Context, tokenString string) (*sec.SessionClaims, error) {
	return fn(ctx, tokenString)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(request.Context(), tokenStr)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
