// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package schema

// VerificationEmailTable represents the 'verification_email' table
type VerificationEmailTable struct {
	Table     string
	AccountID string
	Code      string
	ExpiresAt string
}

// VerificationEmail is the schema definition for verification_email
var VerificationEmail = VerificationEmailTable{
	Table:     "verification_email",
	AccountID: "account_id",
	Code:      "code",
	ExpiresAt: "expires_at",
}

func (t VerificationEmailTable) Columns() []string {
	return []string{t.AccountID, t.Code, t.ExpiresAt}
}
