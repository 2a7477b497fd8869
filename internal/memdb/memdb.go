// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memdb is a process-local implementation of every repository in the
application, selected with STORAGE_DRIVER=memory.

One [Store] holds all tables behind a single lock, so cross-table rules
(a comment needs its tale, a username is unique across profiles) hold the
same way they do in PostgreSQL. Each domain reaches the store through its
own adapter, e.g. store.Tales() or store.Comments().

Values are copied on the way in and on the way out; callers never share
memory with the store.
*/
package memdb

import (
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/quartoselo/internal/core/archive"
	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/newsletter"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/users/auth"
	"github.com/taibuivan/quartoselo/internal/users/profile"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

// Store is the in-memory database.
type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	tales       map[string]tale.Tale
	profiles    map[string]profile.Profile
	comments    map[string]comment.Comment
	accounts    map[string]auth.Account
	sessions    map[string]auth.Session
	submissions []archive.Submission
	subscribers map[string]newsletter.Subscription
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		tales:       make(map[string]tale.Tale),
		profiles:    make(map[string]profile.Profile),
		comments:    make(map[string]comment.Comment),
		accounts:    make(map[string]auth.Account),
		sessions:    make(map[string]auth.Session),
		subscribers: make(map[string]newsletter.Subscription),
	}
}

// # Seeding

/*
SeedTale inserts a tale. A missing ID or CreatedAt is filled in.

Returns:
  - *tale.Tale: A copy of the stored row
*/
func (store *Store) SeedTale(row tale.Tale) *tale.Tale {
	if row.ID == "" {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = store.now()
	}
	row.Images = cloneStrings(row.Images)

	store.mu.Lock()
	store.tales[row.ID] = row
	store.mu.Unlock()

	return copyTale(row)
}

// SeedProfile inserts or replaces a profile without any uniqueness check.
func (store *Store) SeedProfile(row profile.Profile) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.profiles[row.ID] = row
}

/*
ApproveComment moves a pending comment to approved, standing in for the
external moderation action.

Returns:
  - error: apperr.NotFound("Comment"), or apperr.Conflict when already approved
*/
func (store *Store) ApproveComment(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.comments[id]
	if !ok {
		return apperr.NotFound("Comment")
	}
	if !row.Status.CanTransitionTo(comment.StatusApproved) {
		return apperr.Conflict("Comment is already approved")
	}

	row.Status = comment.StatusApproved
	store.comments[id] = row
	return nil
}

// AllComments returns every stored comment regardless of status, newest first.
func (store *Store) AllComments() []comment.Comment {
	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := make([]comment.Comment, 0, len(store.comments))
	for _, row := range store.comments {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return newerComment(rows[i], rows[j]) })
	return rows
}

// # Helpers

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}

func copyTale(row tale.Tale) *tale.Tale {
	row.Images = cloneStrings(row.Images)
	return &row
}

func newerComment(a, b comment.Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
