// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package schema centralizes table and column names for every query in the
application.

Repositories build their SQL from these definitions rather than string
literals, so a rename happens in exactly one place and typos fail review
instead of production.
*/
package schema

// AccountTable represents the 'account' table
type AccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    string
	LastLogin    string
	Verified     string
}

// Account is the schema definition for account
var Account = AccountTable{
	Table:        "account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	Salt:         "salt",
	CreatedAt:    "created_at",
	LastLogin:    "last_login",
	Verified:     "verified",
}

func (t AccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.PasswordHash, t.Salt, t.CreatedAt, t.LastLogin, t.Verified}
}
