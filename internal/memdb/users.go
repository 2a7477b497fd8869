// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memdb

import (
	"context"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/users/auth"
	"github.com/taibuivan/quartoselo/internal/users/profile"
	"github.com/taibuivan/quartoselo/pkg/pointer"
)

// # Profiles

// ProfileRepository implements [profile.Repository].
type ProfileRepository struct{ store *Store }

// Profiles returns the profile adapter.
func (store *Store) Profiles() *ProfileRepository { return &ProfileRepository{store: store} }

func (repository *ProfileRepository) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.profiles[id]
	if !ok {
		return nil, apperr.NotFound("Profile")
	}
	return &row, nil
}

func (repository *ProfileRepository) Upsert(_ context.Context, row *profile.Profile) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()
	return repository.store.upsertProfile(row)
}

// upsertProfile must be called with the write lock held.
func (store *Store) upsertProfile(row *profile.Profile) error {
	if store.usernameTaken(row.Username, row.ID) {
		return apperr.Conflict("Username is already taken")
	}

	updatedAt := store.now()
	row.UpdatedAt = pointer.To(updatedAt)

	stored := *row
	stored.UpdatedAt = pointer.To(updatedAt)
	store.profiles[row.ID] = stored
	return nil
}

func (store *Store) usernameTaken(username, ownerID string) bool {
	if username == "" {
		return false
	}
	for id, existing := range store.profiles {
		if id != ownerID && existing.Username == username {
			return true
		}
	}
	return false
}

// # Accounts

// AccountRepository implements [auth.AccountRepository].
type AccountRepository struct{ store *Store }

// Accounts returns the account adapter.
func (store *Store) Accounts() *AccountRepository { return &AccountRepository{store: store} }

func (repository *AccountRepository) Create(_ context.Context, account *auth.Account, username string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.accounts {
		if existing.Email == account.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	if err := store.upsertProfile(&profile.Profile{ID: account.ID, Username: username}); err != nil {
		return err
	}

	row := *account
	row.Username = ""
	store.accounts[account.ID] = row
	return nil
}

func (repository *AccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, row := range store.accounts {
		if row.Email == email {
			return store.withUsername(row), nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (repository *AccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	row, ok := store.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return store.withUsername(row), nil
}

func (store *Store) withUsername(row auth.Account) *auth.Account {
	if owner, ok := store.profiles[row.ID]; ok {
		row.Username = owner.Username
	}
	return &row
}

// # Sessions

// SessionRepository implements [auth.SessionRepository].
type SessionRepository struct{ store *Store }

// Sessions returns the session adapter.
func (store *Store) Sessions() *SessionRepository { return &SessionRepository{store: store} }

func (repository *SessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()
	repository.store.sessions[session.TokenHash] = *session
	return nil
}

func (repository *SessionRepository) Consume(_ context.Context, tokenHash string) (*auth.Session, error) {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	delete(store.sessions, tokenHash)

	if session.Expired(store.now()) {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}
