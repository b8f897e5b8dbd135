// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wh64dev/wh64-api/internal/platform/database/schema"
	"github.com/wh64dev/wh64-api/internal/platform/dberr"
)

// # Repository Implementations

// Pool is the subset of pgxpool.Pool the repositories use.
// *pgxpool.Pool satisfies it in production, pgxmock in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool Pool
}

// NewAccountRepository creates the Postgres implementation for account storage.
func NewAccountRepository(pool Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresVerificationCodeRepository implements [VerificationCodeRepository]
// using pgx.
type PostgresVerificationCodeRepository struct {
	pool Pool
}

// NewVerificationCodeRepository creates the Postgres implementation for
// pending verification codes.
func NewVerificationCodeRepository(pool Pool) *PostgresVerificationCodeRepository {
	return &PostgresVerificationCodeRepository{pool: pool}
}

// # AccountRepository Methods

/*
Insert stores a new account row.

Parameters:
  - context: context.Context
  - account: fully populated entity, including digest and salt

Returns:
  - error: apperr conflict on username/email collision, or execution failure
*/
func (repository *PostgresAccountRepository) Insert(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.Account.Table,
		schema.Account.ID, schema.Account.Username, schema.Account.Email,
		schema.Account.PasswordHash, schema.Account.Salt, schema.Account.CreatedAt,
		schema.Account.LastLogin, schema.Account.Verified,
	)

	_, err := repository.pool.Exec(context, query,
		account.ID, account.Username, account.Email,
		account.PasswordHash, account.Salt, account.Created,
		account.LastLogin, account.Verified,
	)
	if err != nil {
		return dberr.Wrap(err, "Username or email is already registered")
	}

	return nil
}

/*
FindByUsername retrieves an account by its unique username.

Parameters:
  - context: context.Context
  - username: exact username

Returns:
  - *Account: hydrated entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	return repository.findBy(context, schema.Account.Username, username)
}

/*
FindByID retrieves an account by its id.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Account: hydrated entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findBy(context, schema.Account.ID, id)
}

func (repository *PostgresAccountRepository) findBy(context context.Context, column, value string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Account.ID, schema.Account.Username, schema.Account.Email,
		schema.Account.PasswordHash, schema.Account.Salt, schema.Account.CreatedAt,
		schema.Account.LastLogin, schema.Account.Verified,
		schema.Account.Table, column,
	)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Salt,
		&account.Created,
		&account.LastLogin,
		&account.Verified,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return account, nil
}

/*
UpdateLastLogin records the issue instant of the newest token.

Parameters:
  - context: context.Context
  - id: account id
  - at: token issue instant, already truncated to whole seconds

Returns:
  - error: dberr.ErrNotFound when no row matched, or execution failure
*/
func (repository *PostgresAccountRepository) UpdateLastLogin(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Account.Table, schema.Account.LastLogin, schema.Account.ID)

	return repository.exec(context, query, id, at)
}

/*
UpdateEmail changes the email address and clears the verified flag in the
same statement.

Parameters:
  - context: context.Context
  - id: account id
  - email: new address

Returns:
  - error: apperr conflict when the address is taken, dberr.ErrNotFound when
    no row matched, or execution failure
*/
func (repository *PostgresAccountRepository) UpdateEmail(context context.Context, id, email string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = FALSE WHERE %s = $1`,
		schema.Account.Table, schema.Account.Email, schema.Account.Verified, schema.Account.ID)

	tag, err := repository.pool.Exec(context, query, id, email)
	if err != nil {
		return dberr.Wrap(err, "Email is already registered")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
UpdatePassword replaces the stored digest and salt together.

Parameters:
  - context: context.Context
  - id: account id
  - passwordHash: new digest
  - salt: new salt the digest was derived with

Returns:
  - error: dberr.ErrNotFound when no row matched, or execution failure
*/
func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, id, passwordHash, salt string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Account.Table, schema.Account.PasswordHash, schema.Account.Salt, schema.Account.ID)

	return repository.exec(context, query, id, passwordHash, salt)
}

/*
SetVerified sets the email verification flag.

Parameters:
  - context: context.Context
  - id: account id
  - verified: new flag value

Returns:
  - error: dberr.ErrNotFound when no row matched, or execution failure
*/
func (repository *PostgresAccountRepository) SetVerified(context context.Context, id string, verified bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Account.Table, schema.Account.Verified, schema.Account.ID)

	return repository.exec(context, query, id, verified)
}

/*
Delete removes an account row. Pending verification codes are removed by the
foreign key cascade.

Parameters:
  - context: context.Context
  - id: account id

Returns:
  - error: dberr.ErrNotFound when no row matched, or execution failure
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Account.Table, schema.Account.ID)

	return repository.exec(context, query, id)
}

// exec runs a single-row mutation and maps "no rows matched" to not-found.
func (repository *PostgresAccountRepository) exec(context context.Context, query string, args ...any) error {
	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # VerificationCodeRepository Methods

/*
Upsert stores the pending code for an account, replacing any existing row.

Parameters:
  - context: context.Context
  - accountID: owner account id
  - code: decimal code string
  - expiresAt: instant the code stops being valid

Returns:
  - error: database execution failure
*/
func (repository *PostgresVerificationCodeRepository) Upsert(context context.Context, accountID, code string, expiresAt time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.VerificationEmail.Table,
		schema.VerificationEmail.AccountID, schema.VerificationEmail.Code, schema.VerificationEmail.ExpiresAt,
		schema.VerificationEmail.AccountID,
		schema.VerificationEmail.Code, schema.VerificationEmail.Code,
		schema.VerificationEmail.ExpiresAt, schema.VerificationEmail.ExpiresAt,
	)

	if _, err := repository.pool.Exec(context, query, accountID, code, expiresAt); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
Find retrieves the pending code for an account.

Parameters:
  - context: context.Context
  - accountID: owner account id

Returns:
  - *VerificationCode: pending code row
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresVerificationCodeRepository) Find(context context.Context, accountID string) (*VerificationCode, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.VerificationEmail.AccountID, schema.VerificationEmail.Code, schema.VerificationEmail.ExpiresAt,
		schema.VerificationEmail.Table, schema.VerificationEmail.AccountID,
	)

	record := &VerificationCode{}
	err := repository.pool.QueryRow(context, query, accountID).Scan(
		&record.AccountID,
		&record.Code,
		&record.ExpiresAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return record, nil
}

/*
Delete removes the pending code for an account. A missing row is fine.

Parameters:
  - context: context.Context
  - accountID: owner account id

Returns:
  - error: database execution failure
*/
func (repository *PostgresVerificationCodeRepository) Delete(context context.Context, accountID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.VerificationEmail.Table, schema.VerificationEmail.AccountID)

	if _, err := repository.pool.Exec(context, query, accountID); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}
