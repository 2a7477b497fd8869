// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/api"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/memdb"
	"github.com/taibuivan/quartoselo/internal/platform/config"
	"github.com/taibuivan/quartoselo/internal/platform/constants"
	"github.com/taibuivan/quartoselo/internal/platform/sec"
	"github.com/taibuivan/quartoselo/internal/platform/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type harness struct {
	router http.Handler
	store  *memdb.Store
	tokens *sec.TokenService
}

func newHarness(t *testing.T, checks ...api.HealthCheck) *harness {
	t.Helper()
	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	store := memdb.New()
	handlers := api.NewHandlers(api.Dependencies{
		Tales:        store.Tales(),
		Comments:     store.Comments(),
		Profiles:     store.Profiles(),
		Accounts:     store.Accounts(),
		Sessions:     store.Sessions(),
		Archive:      store.Archive(),
		Objects:      storage.NewMemoryStore(),
		Newsletter:   store.Newsletter(),
		Tokens:       tokens,
		HealthChecks: checks,
	}, discard)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{Environment: "development", AllowedOrigins: []string{"http://localhost:5173"}}
	return &harness{router: api.NewRouter(ctx, cfg, discard, tokens, handlers), store: store, tokens: tokens}
}

func (h *harness) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)
	return recorder
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/ready", "", "").Code)
}

func TestReady_Degraded(t *testing.T) {
	h := newHarness(t,
		api.HealthCheck{Name: "postgres", Check: func(context.Context) error { return nil }},
		api.HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }},
	)

	recorder := h.do(t, http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

func TestRoutes_Public(t *testing.T) {
	h := newHarness(t)
	seeded := h.store.SeedTale(tale.Tale{Title: "O Saci", Content: "Redemoinho"})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"list tales", http.MethodGet, "/api/v1/tales", "", http.StatusOK},
		{"featured tales", http.MethodGet, "/api/v1/tales?limit=3", "", http.StatusOK},
		{"bad limit", http.MethodGet, "/api/v1/tales?limit=abc", "", http.StatusBadRequest},
		{"tale detail", http.MethodGet, "/api/v1/tales/" + seeded.ID, "", http.StatusOK},
		{"tale not found", http.MethodGet, "/api/v1/tales/00000000-0000-0000-0000-000000000000", "", http.StatusNotFound},
		{"approved comments", http.MethodGet, "/api/v1/tales/" + seeded.ID + "/comments", "", http.StatusOK},
		{"anonymous me", http.MethodGet, "/api/v1/auth/me", "", http.StatusOK},
		{"anonymous submit", http.MethodPost, "/api/v1/tales/" + seeded.ID + "/comments", `{"content":"oi"}`, http.StatusUnauthorized},
		{"anonymous own comments", http.MethodGet, "/api/v1/me/comments", "", http.StatusUnauthorized},
		{"anonymous profile", http.MethodGet, "/api/v1/me/profile", "", http.StatusUnauthorized},
		{"newsletter", http.MethodPost, "/api/v1/newsletter/subscriptions", `{"email":"a@example.com"}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := h.do(t, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	recorder := h.do(t, http.MethodPost, "/api/v1/auth/register", `{"email":"leitora@example.com","password":"segredo123","username":"leitora"}`, "")
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var registered struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&registered))

	me := h.do(t, http.MethodGet, "/api/v1/auth/me", "", registered.Data.AccessToken)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"leitora"`)

	refreshed := h.do(t, http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"`+registered.Data.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, refreshed.Code)

	replay := h.do(t, http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"`+registered.Data.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, replay.Code)

	logout := h.do(t, http.MethodPost, "/api/v1/auth/logout", "", registered.Data.AccessToken)
	assert.Equal(t, http.StatusNoContent, logout.Code)
}

func TestForgedTokenIsAnonymous(t *testing.T) {
	h := newHarness(t)
	other, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)
	forged, err := other.GenerateAccessToken("someone", "x", string(sec.RoleAdmin), time.Minute)
	require.NoError(t, err)

	me := h.do(t, http.MethodGet, "/api/v1/auth/me", "", forged)
	require.Equal(t, http.StatusOK, me.Code)
	assert.JSONEq(t, `{"data":null}`, me.Body.String())

	own := h.do(t, http.MethodGet, "/api/v1/me/comments", "", forged)
	assert.Equal(t, http.StatusUnauthorized, own.Code)
}
