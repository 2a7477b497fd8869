// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the auth collaborator: accounts, sign-in and the
refresh-token sessions behind the Session Provider.

# Tokens

  - Access token: RS256 JWT, 15 minutes, carries the identity.
  - Refresh token: 32 random bytes, stored hashed, 30 days, rotated on use.

# Identity

[Identity] is what the rest of the system knows about the caller. It is
derived from verified token claims, never from the request body.
*/
package auth

import (
	"time"

	"github.com/taibuivan/quartoselo/internal/platform/sec"
)

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh session remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
)

// # Domain Entities

// Account is a registered identity with its credentials.
type Account struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`

	// Username is joined from the profile; empty until the owner picks one.
	Username string `json:"username"`
}

// Identity is the authenticated principal as exposed to clients.
type Identity struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	Role     sec.UserRole `json:"role"`
}

// IdentityFromClaims rebuilds the identity carried by an access token.
func IdentityFromClaims(claims *sec.AuthClaims) *Identity {
	if claims == nil {
		return nil
	}
	return &Identity{ID: claims.UserID, Username: claims.Username, Role: sec.UserRole(claims.Role)}
}

// Session is a refresh-token session. Only the token hash is stored.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at now.
func (session *Session) Expired(now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUsername = "username"
)
