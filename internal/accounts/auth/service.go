// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wh64dev/wh64-api/internal/platform/dberr"
	"github.com/wh64dev/wh64-api/pkg/uuidv7"
)

// Service implements the account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or credential logic must be reviewed before merge.
type Service struct {
	accounts AccountRepository
	hasher   *Hasher
	clock    Clock
	logger   *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(accounts AccountRepository, hasher *Hasher, clock Clock, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		clock:    clock,
		logger:   logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register hashes the password and persists a brand new account.

Uniqueness is enforced by the database constraints, not by a pre-read: a
pre-read would race with concurrent registrations and the unique index fires
regardless.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Account: created entity
  - error: apperr conflict when username or email is taken, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Account, error) {
	salt, err := service.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("register_salt_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: service.hasher.Hash(input.Password, salt),
		Salt:         salt,
		Created:      service.clock.Now(),
		Verified:     false,
	}

	if err := service.accounts.Insert(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username))

	return account, nil
}

// # Authentication Flow

/*
Authenticate validates a username/password pair.

Unknown usernames and wrong passwords both return ErrAuthenticationFailed so
the caller cannot probe which usernames exist. The two cases stay
distinguishable in the server log.

Parameters:
  - context: context.Context
  - username: login name
  - password: plaintext candidate

Returns:
  - *Account: the authenticated account
  - error: ErrAuthenticationFailed or storage errors
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*Account, error) {
	account, err := service.accounts.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			service.logger.Info("authentication failed", slog.String("reason", "unknown_username"))
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !service.hasher.Verify(password, account.Salt, account.PasswordHash) {
		service.logger.Info("authentication failed",
			slog.String("reason", "wrong_password"),
			slog.String("account_id", account.ID))
		return nil, ErrAuthenticationFailed
	}

	return account, nil
}

// # Account Management

/*
FindByID loads an account by id.

Parameters:
  - context: context.Context
  - id: account id

Returns:
  - *Account: hydrated entity
  - error: dberr.ErrNotFound or storage errors
*/
func (service *Service) FindByID(context context.Context, id string) (*Account, error) {
	return service.accounts.FindByID(context, id)
}

/*
Delete removes an account and, through the schema cascade, any pending
verification code.

Parameters:
  - context: context.Context
  - id: account id

Returns:
  - error: dberr.ErrNotFound or storage errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.accounts.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("account deleted", slog.String("account_id", id))

	return nil
}

/*
UpdateEmail changes an account's email address. The verified flag is cleared
in the same statement, so the new address must be verified from scratch.

Parameters:
  - context: context.Context
  - id: account id
  - email: new address

Returns:
  - error: apperr conflict when the address is taken, dberr.ErrNotFound, or
    storage errors
*/
func (service *Service) UpdateEmail(context context.Context, id, email string) error {
	return service.accounts.UpdateEmail(context, id, email)
}

/*
ChangePassword verifies the current password and installs a new digest with a
freshly generated salt.

Parameters:
  - context: context.Context
  - id: account id
  - currentPassword: plaintext current password
  - newPassword: plaintext replacement

Returns:
  - error: ErrAuthenticationFailed when the current password is wrong,
    dberr.ErrNotFound, or storage errors
*/
func (service *Service) ChangePassword(context context.Context, id, currentPassword, newPassword string) error {
	account, err := service.accounts.FindByID(context, id)
	if err != nil {
		return err
	}

	if !service.hasher.Verify(currentPassword, account.Salt, account.PasswordHash) {
		service.logger.Info("password change rejected",
			slog.String("reason", "wrong_current_password"),
			slog.String("account_id", account.ID))
		return ErrAuthenticationFailed
	}

	salt, err := service.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("change_password_salt_failed: %w", err)
	}

	if err := service.accounts.UpdatePassword(context, id, service.hasher.Hash(newPassword, salt), salt); err != nil {
		return err
	}

	service.logger.Info("password changed", slog.String("account_id", account.ID))

	return nil
}
