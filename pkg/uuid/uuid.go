// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

Every primary key minted by this service (comments, submissions, auth
sessions) is a UUIDv7, so rows inserted later sort after rows inserted
earlier even when two rows share a created_at timestamp.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Parsing

// Valid reports whether s is a well-formed UUID of any version.
//
// Handlers use it to answer malformed path identifiers with NOT_FOUND
// instead of letting PostgreSQL reject the cast.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
