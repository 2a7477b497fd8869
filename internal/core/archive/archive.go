// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package archive collects legends sent in by visitors.

A submission is held for curator review and never becomes a tale by itself.
It may carry one audio or image attachment, which is written to object
storage before the submission row.
*/
package archive

import (
	"strings"
	"time"
)

// # Limits

const (
	// MaxAttachmentBytes caps an uploaded attachment at 10 MiB.
	MaxAttachmentBytes = 10 << 20

	MaxTitleLength    = 200
	MaxNameLength     = 100
	MaxLocationLength = 200
	MaxStoryLength    = 20000

	// KeyPrefix is the object storage prefix for attachments.
	KeyPrefix = "archive"
)

// # Domain Entities

// Submission is a visitor-sent legend awaiting review.
type Submission struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Interviewee    string    `json:"interviewee"`
	Story          string    `json:"story"`
	AttachmentKey  *string   `json:"attachment_key"`
	AttachmentType *string   `json:"attachment_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// Attachment is an uploaded file before it reaches storage.
type Attachment struct {
	Filename string
	Data     []byte
}

// allowedMediaType reports whether a sniffed MIME type may be stored.
func allowedMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "audio/") || strings.HasPrefix(mediaType, "image/")
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldTitle       = "title"
	FieldLocation    = "location"
	FieldInterviewee = "interviewee"
	FieldStory       = "story"
	FieldAttachment  = "attachment"
)
