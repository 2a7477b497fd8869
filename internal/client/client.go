// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the reader-facing side of the blog: a typed HTTP client
for the API plus the view-models a front end binds to.

# Components

  - [Client]: one method per API operation, JSON envelopes decoded.
  - [Session]: the Session Provider. Created once, started once, updated
    by sign-in and sign-out.
  - Views: [HomeView], [TalesView], [TaleDetailView], [CommentForm] and
    [ProfileView]. Each owns its state and never shares it.

# Failures

Views never return transport errors to the caller as a fault. They record a
[Notice] and leave the previous state in place. Nothing is retried.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/users/auth"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

// # Errors

var (
	// ErrNotFound matches API responses with code NOT_FOUND.
	ErrNotFound = errors.New("client: not found")

	// ErrAuthRequired matches API responses with code UNAUTHORIZED, and is
	// returned without a request when an operation needs an identity.
	ErrAuthRequired = errors.New("client: authentication required")

	// ErrSubmissionInFlight is returned when a submit is attempted while the
	// previous one has not finished.
	ErrSubmissionInFlight = errors.New("client: submission already in flight")
)

// APIError is a decoded error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []apperr.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Is lets errors.Is match the sentinel errors by API code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == apperr.CodeNotFound
	case ErrAuthRequired:
		return e.Code == apperr.CodeUnauthorized
	}
	return false
}

// # Client

// Client talks to the blog API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string
}

// New creates a client for the API rooted at baseURL (e.g.
// "https://oquartoselo.blog"). A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// SetAccessToken sets the bearer token sent with every request. Empty
// makes the client anonymous.
func (client *Client) SetAccessToken(token string) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.accessToken = token
}

func (client *Client) token() string {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.accessToken
}

// # Tales

// ListTales returns tales newest first. limit 0 means all.
func (client *Client) ListTales(ctx context.Context, limit int) ([]*tale.Tale, error) {
	path := "/api/v1/tales"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var tales []*tale.Tale
	if err := client.do(ctx, http.MethodGet, path, nil, &tales, nil); err != nil {
		return nil, err
	}
	return tales, nil
}

// GetTale returns one tale, or an error matching ErrNotFound.
func (client *Client) GetTale(ctx context.Context, id string) (*tale.Tale, error) {
	var result tale.Tale
	if err := client.do(ctx, http.MethodGet, "/api/v1/tales/"+url.PathEscape(id), nil, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// # Comments

// ListApprovedComments returns the public comments of a tale.
func (client *Client) ListApprovedComments(ctx context.Context, taleID string) ([]*comment.PublicComment, error) {
	var comments []*comment.PublicComment
	if err := client.do(ctx, http.MethodGet, "/api/v1/tales/"+url.PathEscape(taleID)+"/comments", nil, &comments, nil); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListOwnComments returns the signed-in reader's comments with status.
func (client *Client) ListOwnComments(ctx context.Context) ([]*comment.OwnComment, error) {
	var comments []*comment.OwnComment
	if err := client.do(ctx, http.MethodGet, "/api/v1/me/comments", nil, &comments, nil); err != nil {
		return nil, err
	}
	return comments, nil
}

// SubmitComment posts a comment and returns it with the server's notice.
func (client *Client) SubmitComment(ctx context.Context, taleID, content string) (*comment.Comment, string, error) {
	var (
		created comment.Comment
		message string
	)
	body := map[string]string{"content": content}
	if err := client.do(ctx, http.MethodPost, "/api/v1/tales/"+url.PathEscape(taleID)+"/comments", body, &created, &message); err != nil {
		return nil, "", err
	}
	return &created, message, nil
}

// # Profile

// GetProfile returns the signed-in reader's profile.
func (client *Client) GetProfile(ctx context.Context) (*profile.Profile, error) {
	var result profile.Profile
	if err := client.do(ctx, http.MethodGet, "/api/v1/me/profile", nil, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfile overwrites the signed-in reader's profile.
func (client *Client) UpdateProfile(ctx context.Context, input profile.UpdateInput) (*profile.Profile, error) {
	body := map[string]string{
		"username":   input.Username,
		"full_name":  input.FullName,
		"bio":        input.Bio,
		"avatar_url": input.AvatarURL,
	}

	var result profile.Profile
	if err := client.do(ctx, http.MethodPut, "/api/v1/me/profile", body, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// # Auth

// CurrentIdentity returns the identity behind the access token, or nil.
func (client *Client) CurrentIdentity(ctx context.Context) (*auth.Identity, error) {
	var identity *auth.Identity
	if err := client.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &identity, nil); err != nil {
		return nil, err
	}
	return identity, nil
}

// Register creates an account. The returned tokens are not installed.
func (client *Client) Register(ctx context.Context, email, password, username string) (*auth.TokenResponse, error) {
	body := map[string]string{"email": email, "password": password, "username": username}

	var tokens auth.TokenResponse
	if err := client.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &tokens, nil); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Login signs in. The returned tokens are not installed.
func (client *Client) Login(ctx context.Context, email, password string) (*auth.TokenResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var tokens auth.TokenResponse
	if err := client.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &tokens, nil); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes a refresh token.
func (client *Client) Logout(ctx context.Context, refreshToken string) error {
	return client.do(ctx, http.MethodPost, "/api/v1/auth/logout", map[string]string{"refresh_token": refreshToken}, nil, nil)
}

// # Transport

type envelope struct {
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

// do sends one request. data and message, when non-nil, receive the
// envelope's fields.
func (client *Client) do(ctx context.Context, method, path string, body, data any, message *string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := client.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNoContent {
		return nil
	}

	var decoded envelope
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("client: decode %s %s (status %d): %w", method, path, response.StatusCode, err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return &APIError{
			Status:  response.StatusCode,
			Code:    decoded.Code,
			Message: decoded.Error,
			Details: decoded.Details,
		}
	}

	if message != nil {
		*message = decoded.Message
	}
	if data != nil && len(decoded.Data) > 0 {
		if err := json.Unmarshal(decoded.Data, data); err != nil {
			return fmt.Errorf("client: decode data of %s %s: %w", method, path, err)
		}
	}
	return nil
}
