// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a comment service.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

/*
ListApprovedComments returns the publicly visible comments of a tale.

Returns:
  - []*PublicComment: Approved only, newest first
  - error: apperr.NotFound("Tale") for a malformed tale ID
*/
func (service *Service) ListApprovedComments(context context.Context, taleID string) ([]*PublicComment, error) {
	if !uuid.Valid(taleID) {
		return nil, apperr.NotFound("Tale")
	}

	comments, err := service.repository.ListApproved(context, taleID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_approved_failed: %w", err)
	}
	return comments, nil
}

/*
ListOwnComments returns the caller's full comment history.

Parameters:
  - context: context.Context
  - userID: string (the authenticated identity, never a request parameter)

Returns:
  - []*OwnComment: Pending and approved, newest first
  - error: apperr.Unauthorized for an anonymous caller
*/
func (service *Service) ListOwnComments(context context.Context, userID string) ([]*OwnComment, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	comments, err := service.repository.ListByAuthor(context, userID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_own_failed: %w", err)
	}
	return comments, nil
}

// SubmitInput holds a new comment as typed by its author.
type SubmitInput struct {
	TaleID  string
	UserID  string
	Content string
}

/*
SubmitComment stores a new comment awaiting moderation.

Description: Content is trimmed and NFC-normalized before validation. The
created comment is always [StatusPending], whatever the caller's role.

Returns:
  - *Comment: The stored comment
  - error: Unauthorized (anonymous), validation (blank or too long),
    NotFound (unknown tale) or storage failures
*/
func (service *Service) SubmitComment(context context.Context, input SubmitInput) (*Comment, error) {
	if input.UserID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if !uuid.Valid(input.TaleID) {
		return nil, apperr.NotFound("Tale")
	}

	content := validate.Text(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content).
		MaxLen(FieldContent, content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuid.New(),
		TaleID:    input.TaleID,
		UserID:    input.UserID,
		Content:   content,
		Status:    StatusPending,
		CreatedAt: service.now(),
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_submit_failed: %w", err)
	}

	service.logger.InfoContext(context, "comment_submitted",
		slog.String("comment_id", comment.ID),
		slog.String("tale_id", comment.TaleID),
		slog.String("user_id", comment.UserID),
	)

	return comment, nil
}
