// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AccountTable represents the 'accounts' table
type AccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    string

	// EmailKey is the unique constraint on Email
	EmailKey string
}

// Account is the schema definition for accounts
var Account = AccountTable{
	Table:        "accounts",
	ID:           "id",
	Email:        "email",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
	EmailKey:     "accounts_email_key",
}

// Columns returns all standard column names
func (t AccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.PasswordHash, t.Role, t.CreatedAt}
}
