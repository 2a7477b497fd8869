// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		ListApproved returns the approved comments of a tale, newest first,
		each joined with its author's public profile.

		Returns:
		  - []*PublicComment: Possibly empty, never nil
	*/
	ListApproved(context context.Context, taleID string) ([]*PublicComment, error)

	/*
		ListByAuthor returns every comment written by userID, pending ones
		included, newest first, each joined with its tale title.
	*/
	ListByAuthor(context context.Context, userID string) ([]*OwnComment, error)

	/*
		Create persists a new comment exactly as given.

		Returns:
		  - error: apperr.NotFound("Tale") when the tale does not exist
	*/
	Create(context context.Context, comment *Comment) error
}
