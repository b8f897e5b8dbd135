// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wh64dev/wh64-api/internal/platform/dberr"
	"github.com/wh64dev/wh64-api/internal/platform/sec"
)

// TokenIssuer mints and verifies HS256 session tokens.
//
// Revocation is server-side state, not token state: Issue records the issue
// instant on the account's last_login column, and Verify rejects any token
// issued strictly before that instant. Issuing a token therefore revokes
// every token that came before it, and deleting the account revokes all of
// them.
//
// Issue instants are truncated to whole seconds before both signing and
// storage, because the JWT iat claim only carries seconds. Comparing an
// untruncated database timestamp against a truncated claim would revoke the
// newest token itself.
type TokenIssuer struct {
	accounts AccountRepository
	secret   []byte
	issuer   string
	audience string
	validity time.Duration
	clock    Clock
}

// NewTokenIssuer constructs a [TokenIssuer].
func NewTokenIssuer(accounts AccountRepository, secret []byte, issuer, audience string, clock Clock) *TokenIssuer {
	return &TokenIssuer{
		accounts: accounts,
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		validity: TokenValidity,
		clock:    clock,
	}
}

/*
Issue signs a new session token for the account and advances its last_login,
revoking every previously issued token.

The last_login write happens before signing. If the write fails no token is
returned, so a returned token is always the account's newest lineage.

Parameters:
  - context: context.Context
  - account: authenticated account

Returns:
  - string: signed compact JWT
  - error: storage or signing failure
*/
func (tokenIssuer *TokenIssuer) Issue(context context.Context, account *Account) (string, error) {
	issuedAt := tokenIssuer.clock.Now().Truncate(time.Second)

	if err := tokenIssuer.accounts.UpdateLastLogin(context, account.ID, issuedAt); err != nil {
		return "", fmt.Errorf("issue_token_stamp_failed: %w", err)
	}

	claims := &sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer.issuer,
			Audience:  jwt.ClaimStrings{tokenIssuer.audience},
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tokenIssuer.validity)),
		},
		UserID:   account.ID,
		Username: account.Username,
		Email:    account.Email,
		Verified: account.Verified,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenIssuer.secret)
	if err != nil {
		return "", fmt.Errorf("issue_token_sign_failed: %w", err)
	}

	return signed, nil
}

/*
VerifyToken checks a compact JWT and returns its claims when the token is the
account's current lineage.

Failure ordering matters: signature, issuer, and audience are checked first
(ErrInvalidToken), then expiry (ErrExpiredToken), and only for an otherwise
valid token is the revocation state consulted (ErrRevokedToken). An expired
token never reports revoked, and a forged token never learns whether the
account exists.

Parameters:
  - context: context.Context
  - tokenString: compact JWT from the Authorization header

Returns:
  - *sec.SessionClaims: verified claims
  - error: ErrInvalidToken, ErrExpiredToken, ErrRevokedToken, or storage
    failure
*/
func (tokenIssuer *TokenIssuer) VerifyToken(context context.Context, tokenString string) (*sec.SessionClaims, error) {
	claims := &sec.SessionClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, tokenIssuer.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer.issuer),
		jwt.WithAudience(tokenIssuer.audience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(tokenIssuer.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	account, err := tokenIssuer.accounts.FindByID(context, claims.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrRevokedToken
		}
		return nil, fmt.Errorf("verify_token_lookup_failed: %w", err)
	}

	// Strictly-after comparison: the newest token's iat equals last_login and
	// must stay valid.
	if account.LastLogin != nil && claims.IssuedAt != nil && account.LastLogin.After(claims.IssuedAt.Time) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

func (tokenIssuer *TokenIssuer) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected_signing_method: %v", token.Header["alg"])
	}

	return tokenIssuer.secret, nil
}
