// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile manages the public record tied one-to-one to an identity.

A profile row is created when an identity registers. Reading a profile that
does not exist yet yields empty fields, not an error. Updates overwrite all
four editable fields of the caller's own record and create the row when it
is missing.
*/
package profile

import (
	"context"
	"time"
)

// # Domain Entity

// Profile is the editable public record of an identity.
type Profile struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Bio       string     `json:"bio"`
	AvatarURL string     `json:"avatar_url"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// # Constraints

const (
	MaxBioLength      = 250
	MaxUsernameLength = 50
	MaxFullNameLength = 100
)

// Field identifiers used in validation details.
const (
	FieldUsername  = "username"
	FieldFullName  = "full_name"
	FieldBio       = "bio"
	FieldAvatarURL = "avatar_url"
)

// # Repository Contract

// Repository defines the persistence contract for profiles.
type Repository interface {

	/*
		FindByID returns the profile of an identity.

		Returns:
		  - error: apperr.NotFound("Profile") when no row exists
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	/*
		Upsert writes every editable field, creating the row if needed,
		and sets UpdatedAt.

		Returns:
		  - error: apperr.Conflict when the username belongs to someone else
	*/
	Upsert(context context.Context, profile *Profile) error
}
