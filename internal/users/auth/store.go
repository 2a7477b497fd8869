// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # Account Data Access

// AccountRepository defines the data access contract for accounts.
type AccountRepository interface {

	/*
		Create persists a new account together with its profile row, in one
		transaction.

		Parameters:
		  - context: context.Context
		  - account: *Account
		  - username: string (may be empty)

		Returns:
		  - error: apperr.Conflict for a taken email or username
	*/
	Create(context context.Context, account *Account, username string) error

	/*
		FindByEmail returns the account with the given lower-cased email.

		Returns:
		  - error: apperr.NotFound("Account")
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - error: apperr.NotFound("Account")
	*/
	FindByID(context context.Context, id string) (*Account, error)
}

// # Session Data Access

// SessionRepository stores refresh sessions keyed by token hash.
type SessionRepository interface {

	/*
		Create stores a session until its ExpiresAt.
	*/
	Create(context context.Context, session *Session) error

	/*
		Consume atomically removes and returns the session for tokenHash.
		A consumed token can never be used again.

		Returns:
		  - error: apperr.NotFound("Session") if absent or expired
	*/
	Consume(context context.Context, tokenHash string) (*Session, error)
}
