// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memdb

import (
	"context"
	"sort"

	"github.com/taibuivan/quartoselo/internal/core/archive"
	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/newsletter"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/pkg/pointer"
	"github.com/taibuivan/quartoselo/pkg/slice"
)

// # Tales

// TaleRepository implements [tale.Repository].
type TaleRepository struct{ store *Store }

// Tales returns the tale adapter.
func (store *Store) Tales() *TaleRepository { return &TaleRepository{store: store} }

func (repository *TaleRepository) List(_ context.Context, limit int) ([]*tale.Tale, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	rows := make([]tale.Tale, 0, len(repository.store.tales))
	for _, row := range repository.store.tales {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return slice.Map(rows, copyTale), nil
}

func (repository *TaleRepository) FindByID(_ context.Context, id string) (*tale.Tale, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.tales[id]
	if !ok {
		return nil, apperr.NotFound("Tale")
	}
	return copyTale(row), nil
}

// # Comments

// CommentRepository implements [comment.Repository].
type CommentRepository struct{ store *Store }

// Comments returns the comment adapter.
func (store *Store) Comments() *CommentRepository { return &CommentRepository{store: store} }

func (repository *CommentRepository) ListApproved(_ context.Context, taleID string) ([]*comment.PublicComment, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	approved := slice.Filter(store.sortedComments(), func(row comment.Comment) bool {
		return row.TaleID == taleID && row.Status.IsPublic()
	})

	return slice.Map(approved, func(row comment.Comment) *comment.PublicComment {
		item := &comment.PublicComment{Comment: row}
		if author, ok := store.profiles[row.UserID]; ok {
			item.Author = &comment.AuthorSummary{Username: author.Username, AvatarURL: author.AvatarURL}
		}
		return item
	}), nil
}

func (repository *CommentRepository) ListByAuthor(_ context.Context, userID string) ([]*comment.OwnComment, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	own := slice.Filter(store.sortedComments(), func(row comment.Comment) bool {
		return row.UserID == userID
	})

	return slice.Map(own, func(row comment.Comment) *comment.OwnComment {
		item := &comment.OwnComment{Comment: row}
		if parent, ok := store.tales[row.TaleID]; ok {
			item.TaleTitle = pointer.To(parent.Title)
		}
		return item
	}), nil
}

func (repository *CommentRepository) Create(_ context.Context, row *comment.Comment) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.tales[row.TaleID]; !ok {
		return apperr.NotFound("Tale")
	}
	if _, exists := store.comments[row.ID]; exists {
		return apperr.Conflict("Comment already exists")
	}
	store.comments[row.ID] = *row
	return nil
}

// sortedComments must be called with the lock held.
func (store *Store) sortedComments() []comment.Comment {
	rows := make([]comment.Comment, 0, len(store.comments))
	for _, row := range store.comments {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return newerComment(rows[i], rows[j]) })
	return rows
}

// # Archive

// ArchiveRepository implements [archive.Repository].
type ArchiveRepository struct{ store *Store }

// Archive returns the archive adapter.
func (store *Store) Archive() *ArchiveRepository { return &ArchiveRepository{store: store} }

func (repository *ArchiveRepository) Create(_ context.Context, submission *archive.Submission) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()
	repository.store.submissions = append(repository.store.submissions, *submission)
	return nil
}

// Submissions returns stored submissions in arrival order.
func (repository *ArchiveRepository) Submissions() []archive.Submission {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return append([]archive.Submission(nil), repository.store.submissions...)
}

// # Newsletter

// NewsletterRepository implements [newsletter.Repository].
type NewsletterRepository struct{ store *Store }

// Newsletter returns the newsletter adapter.
func (store *Store) Newsletter() *NewsletterRepository { return &NewsletterRepository{store: store} }

func (repository *NewsletterRepository) Subscribe(_ context.Context, subscription *newsletter.Subscription) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if _, exists := repository.store.subscribers[subscription.Email]; !exists {
		repository.store.subscribers[subscription.Email] = *subscription
	}
	return nil
}

// Count returns the number of distinct subscribed addresses.
func (repository *NewsletterRepository) Count() int {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return len(repository.store.subscribers)
}
