// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/sec"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
	"github.com/taibuivan/quartoselo/internal/users/profile"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	accountRepository AccountRepository,
	sessionRepository SessionRepository,
	tokenProvider TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepository,
		sessionRepository: sessionRepository,
		tokenProvider:     tokenProvider,
		logger:            logger,
		now:               time.Now,
	}
}

// Tokens is the credential pair handed to a signed-in client.
type Tokens struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Identity              *Identity
}

// ClientInfo describes where a sign-in came from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Username string
}

/*
Register creates an account and signs it in.

Description: The email is lower-cased before storage. The account and its
(possibly empty) profile are written together, then a session is opened.

Parameters:
  - context: context.Context
  - input: RegisterInput
  - client: ClientInfo

Returns:
  - *Tokens: Credentials for the new identity
  - error: Validation, Conflict (email or username taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput, client ClientInfo) (*Tokens, error) {
	email := normalizeEmail(input.Email)
	username := validate.Text(input.Username)

	validator := &validate.Validator{}
	validator.Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldUsername, username, profile.MaxUsernameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
		CreatedAt:    service.now().UTC(),
		Username:     username,
	}

	if err := service.accountRepository.Create(context, account, username); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "account_registered", slog.String("user_id", account.ID))

	return service.openSession(context, account, client)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates credentials and opens a session.

Description: Unknown email and wrong password yield the same error so the
response does not reveal which accounts exist.

Returns:
  - *Tokens: Access and refresh tokens
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput, client ClientInfo) (*Tokens, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.accountRepository.FindByEmail(context, normalizeEmail(input.Email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.openSession(context, account, client)
}

/*
Refresh rotates a refresh token.

Description: The presented session is consumed first, so a token works at
most once. The account is re-read to pick up a changed username.

Returns:
  - *Tokens: A new access token and a new refresh token
  - error: Unauthorized for unknown, used or expired tokens
*/
func (service *Service) Refresh(context context.Context, refreshToken string, client ClientInfo) (*Tokens, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Missing refresh token")
	}

	session, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}

	account, err := service.accountRepository.FindByID(context, session.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}

	return service.openSession(context, account, client)
}

/*
Logout revokes the session behind refreshToken. Unknown tokens are not an
error; signing out twice is allowed.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	session, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.InfoContext(context, "session_revoked", slog.String("user_id", session.UserID))
	return nil
}

func (service *Service) openSession(context context.Context, account *Account, client ClientInfo) (*Tokens, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Username, string(account.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	now := service.now().UTC()
	session := &Session{
		ID:        uuid.New(),
		UserID:    account.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &Tokens{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		Identity:              &Identity{ID: account.ID, Username: account.Username, Role: account.Role},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
