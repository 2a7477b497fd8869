// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/storage"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
	"github.com/taibuivan/quartoselo/pkg/pointer"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

// Service accepts archive submissions.
type Service struct {
	repository Repository
	objects    storage.ObjectStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs an archive service. objects may be nil, in which
// case submissions with an attachment are refused.
func NewService(repository Repository, objects storage.ObjectStore, logger *slog.Logger) *Service {
	return &Service{repository: repository, objects: objects, logger: logger, now: time.Now}
}

// SubmitInput is a raw submission as sent by a visitor.
type SubmitInput struct {
	Name        string
	Email       string
	Title       string
	Location    string
	Interviewee string
	Story       string
	Attachment  *Attachment
}

/*
Submit validates and stores a submission.

Description: Text fields are trimmed and NFC-normalized. An attachment is
sniffed from its bytes, never trusted by filename, and must be audio or
image. It is uploaded before the row is written; an upload failure writes
nothing.

Returns:
  - *Submission: The stored submission
  - error: Validation, ServiceUnavailable (no object storage) or storage errors
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Submission, error) {
	submission := &Submission{
		ID:          uuid.New(),
		Name:        validate.Text(input.Name),
		Email:       strings.ToLower(validate.Text(input.Email)),
		Title:       validate.Text(input.Title),
		Location:    validate.Text(input.Location),
		Interviewee: validate.Text(input.Interviewee),
		Story:       validate.Text(input.Story),
		CreatedAt:   service.now().UTC(),
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, submission.Title).
		MaxLen(FieldTitle, submission.Title, MaxTitleLength).
		Required(FieldStory, submission.Story).
		MaxLen(FieldStory, submission.Story, MaxStoryLength).
		MaxLen(FieldName, submission.Name, MaxNameLength).
		MaxLen(FieldLocation, submission.Location, MaxLocationLength).
		MaxLen(FieldInterviewee, submission.Interviewee, MaxNameLength).
		OptionalEmail(FieldEmail, submission.Email)

	var mediaType *mimetype.MIME
	if input.Attachment != nil {
		size := len(input.Attachment.Data)
		validator.Custom(FieldAttachment, size == 0, "Attachment is empty").
			Custom(FieldAttachment, size > MaxAttachmentBytes, "Attachment exceeds 10 MiB")

		if size > 0 {
			mediaType = mimetype.Detect(input.Attachment.Data)
			validator.Custom(FieldAttachment, !allowedMediaType(mediaType.String()), "Only audio and image files are accepted")
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Attachment != nil {
		if service.objects == nil {
			return nil, apperr.ServiceUnavailable("Attachments are not accepted right now")
		}

		key := fmt.Sprintf("%s/%s/%s%s", KeyPrefix, submission.ID, uuid.New(), mediaType.Extension())
		contentType := mediaType.String()
		data := input.Attachment.Data

		if err := service.objects.Put(context, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
			return nil, fmt.Errorf("archive_service_upload_failed: %w", err)
		}
		submission.AttachmentKey = pointer.To(key)
		submission.AttachmentType = pointer.To(contentType)
	}

	if err := service.repository.Create(context, submission); err != nil {
		return nil, fmt.Errorf("archive_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "archive_submission_received",
		slog.String("submission_id", submission.ID),
		slog.Bool("has_attachment", submission.AttachmentKey != nil),
	)

	return submission, nil
}
