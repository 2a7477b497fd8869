// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/api"
	"github.com/taibuivan/quartoselo/internal/client"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/memdb"
	"github.com/taibuivan/quartoselo/internal/platform/config"
	"github.com/taibuivan/quartoselo/internal/platform/constants"
	"github.com/taibuivan/quartoselo/internal/platform/sec"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// interceptor lets a test answer or delay selected requests before they
// reach the real router.
type interceptor struct {
	next http.Handler

	mu   sync.Mutex
	hook func(writer http.ResponseWriter, request *http.Request) bool
}

func (i *interceptor) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	i.mu.Lock()
	hook := i.hook
	i.mu.Unlock()

	if hook != nil && hook(writer, request) {
		return
	}
	i.next.ServeHTTP(writer, request)
}

func (i *interceptor) set(hook func(writer http.ResponseWriter, request *http.Request) bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.hook = hook
}

type harness struct {
	store     *memdb.Store
	server    *httptest.Server
	intercept *interceptor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	store := memdb.New()
	handlers := api.NewHandlers(api.Dependencies{
		Tales:      store.Tales(),
		Comments:   store.Comments(),
		Profiles:   store.Profiles(),
		Accounts:   store.Accounts(),
		Sessions:   store.Sessions(),
		Archive:    store.Archive(),
		Newsletter: store.Newsletter(),
		Tokens:     tokens,
	}, discard)

	ctx, cancel := context.WithCancel(context.Background())
	cfg := &config.Config{Environment: "development"}
	intercept := &interceptor{next: api.NewRouter(ctx, cfg, discard, tokens, handlers)}
	server := httptest.NewServer(intercept)

	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return &harness{store: store, server: server, intercept: intercept}
}

func (h *harness) client() *client.Client {
	return client.New(h.server.URL, h.server.Client())
}

func (h *harness) seedTales(n int) []*tale.Tale {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	seeded := make([]*tale.Tale, 0, n)
	for i := 0; i < n; i++ {
		seeded = append(seeded, h.store.SeedTale(tale.Tale{
			Title:     "Conto " + string(rune('A'+i)),
			Content:   "Numa noite sem lua...",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	return seeded
}

// signedIn registers an account and returns a started, signed-in session.
func (h *harness) signedIn(t *testing.T, email, username string) (*client.Client, *client.Session) {
	t.Helper()
	c := h.client()
	_, err := c.Register(context.Background(), email, "segredo123", username)
	require.NoError(t, err)

	session := client.NewSession(c, discard)
	_, err = session.SignIn(context.Background(), email, "segredo123")
	require.NoError(t, err)
	return c, session
}

// anonymous returns a started session with no identity.
func (h *harness) anonymous(t *testing.T) (*client.Client, *client.Session) {
	t.Helper()
	c := h.client()
	session := client.NewSession(c, discard)
	session.Start(context.Background())
	require.NoError(t, session.Wait(context.Background()))
	return c, session
}

func failWith(status int, body string) func(http.ResponseWriter) {
	return func(writer http.ResponseWriter) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}
}

// holdFirst delays the first request matched by match until release is
// closed, then answers it with a 200 and body. Later requests reach the
// router.
func (h *harness) holdFirst(match func(*http.Request) bool, body string) (arrived <-chan struct{}, release chan struct{}) {
	entered := make(chan struct{}, 1)
	release = make(chan struct{})

	var held atomic.Bool
	h.intercept.set(func(writer http.ResponseWriter, request *http.Request) bool {
		if !match(request) || !held.CompareAndSwap(false, true) {
			return false
		}
		entered <- struct{}{}
		<-release
		failWith(http.StatusOK, body)(writer)
		return true
	})
	return entered, release
}

func pathIs(method, path string) func(*http.Request) bool {
	return func(request *http.Request) bool {
		return request.Method == method && request.URL.Path == path
	}
}
