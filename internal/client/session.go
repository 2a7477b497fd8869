// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/quartoselo/internal/users/auth"
)

/*
Session is the Session Provider: the current identity, or none, plus a
loading flag for the initial identity check.

# Lifecycle

 1. [NewSession] once at application start. Loading is true.
 2. [Session.Start] resolves the identity in the background. Failure
    leaves the session anonymous.
 3. [Session.SignIn] and [Session.SignOut] update the identity and notify
    subscribers.

Views that need ownership call [Session.Wait] before their first request.
*/
type Session struct {
	client *Client
	logger *slog.Logger

	mu           sync.RWMutex
	identity     *auth.Identity
	refreshToken string
	loading      bool
	version      uint64
	listeners    map[int]func(*auth.Identity)
	nextListener int

	start sync.Once
	ready chan struct{}
	done  sync.Once
}

// NewSession creates a session in the loading state.
func NewSession(client *Client, logger *slog.Logger) *Session {
	return &Session{
		client:    client,
		logger:    logger,
		loading:   true,
		listeners: make(map[int]func(*auth.Identity)),
		ready:     make(chan struct{}),
	}
}

// Start launches the initial identity check. Later calls do nothing.
func (session *Session) Start(ctx context.Context) {
	session.start.Do(func() {
		session.mu.RLock()
		version := session.version
		session.mu.RUnlock()

		go session.resolve(ctx, version)
	})
}

func (session *Session) resolve(ctx context.Context, version uint64) {
	identity, err := session.client.CurrentIdentity(ctx)
	if err != nil {
		session.logger.WarnContext(ctx, "session_identity_check_failed", slog.Any("error", err))
		identity = nil
	}

	session.mu.Lock()
	superseded := session.version != version
	if !superseded {
		session.identity = identity
	}
	session.mu.Unlock()

	session.finishLoading()
	if !superseded {
		session.notify(identity)
	}
}

func (session *Session) finishLoading() {
	session.done.Do(func() {
		session.mu.Lock()
		session.loading = false
		session.mu.Unlock()
		close(session.ready)
	})
}

// Identity returns the current identity, or nil when anonymous.
func (session *Session) Identity() *auth.Identity {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.identity
}

// Loading reports whether the initial identity check is still running.
func (session *Session) Loading() bool {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.loading
}

// Wait blocks until the initial identity check has finished.
func (session *Session) Wait(ctx context.Context) error {
	select {
	case <-session.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers fn for identity changes and returns a func that
// removes it. fn runs on the goroutine that changed the identity.
func (session *Session) Subscribe(fn func(*auth.Identity)) func() {
	session.mu.Lock()
	id := session.nextListener
	session.nextListener++
	session.listeners[id] = fn
	session.mu.Unlock()

	return func() {
		session.mu.Lock()
		delete(session.listeners, id)
		session.mu.Unlock()
	}
}

func (session *Session) notify(identity *auth.Identity) {
	session.mu.RLock()
	listeners := make([]func(*auth.Identity), 0, len(session.listeners))
	for _, fn := range session.listeners {
		listeners = append(listeners, fn)
	}
	session.mu.RUnlock()

	for _, fn := range listeners {
		fn(identity)
	}
}

// SignIn authenticates and installs the new identity. A still-running
// initial check is superseded.
func (session *Session) SignIn(ctx context.Context, email, password string) (*auth.Identity, error) {
	tokens, err := session.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session.client.SetAccessToken(tokens.AccessToken)

	session.mu.Lock()
	session.version++
	session.identity = tokens.Identity
	session.refreshToken = tokens.RefreshToken
	session.mu.Unlock()

	session.finishLoading()
	session.notify(tokens.Identity)
	return tokens.Identity, nil
}

/*
SignOut clears the identity and returns the reader to the home view.

Description: The refresh token is revoked on a best-effort basis; the local
identity is cleared even when the request fails.
*/
func (session *Session) SignOut(ctx context.Context) Route {
	session.mu.Lock()
	session.version++
	refreshToken := session.refreshToken
	session.identity = nil
	session.refreshToken = ""
	session.mu.Unlock()

	if refreshToken != "" {
		if err := session.client.Logout(ctx, refreshToken); err != nil {
			session.logger.WarnContext(ctx, "session_logout_failed", slog.Any("error", err))
		}
	}
	session.client.SetAccessToken("")

	session.finishLoading()
	session.notify(nil)
	return RouteHome
}
