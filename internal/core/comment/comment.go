// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements reader comments and their moderation gate.

# Moderation

Every comment is created [StatusPending]. The only legal transition is
Pending to [StatusApproved], and it is performed by an external moderation
action; nothing in this package approves a comment. Third parties only ever
see approved comments. Authors see all of their own comments, with status.
*/
package comment

import "time"

// # Moderation Status

// Status is the visibility state of a comment.
type Status string

const (
	// StatusPending is the initial state. Visible to the author only.
	StatusPending Status = "pending"

	// StatusApproved is set by a moderator. Visible to everyone.
	StatusApproved Status = "approved"
)

// StatusFromApproved maps the stored approval flag to a Status.
func StatusFromApproved(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusPending
}

// Approved reports the stored form of the status.
func (s Status) Approved() bool {
	return s == StatusApproved
}

// IsPublic reports whether third parties may see a comment in this state.
func (s Status) IsPublic() bool {
	return s == StatusApproved
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next == StatusApproved
}

// # Domain Entities

// Comment is a reader reaction attached to a tale.
type Comment struct {
	ID        string    `json:"id"`
	TaleID    string    `json:"tale_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorSummary is the public subset of the author's profile.
type AuthorSummary struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// PublicComment is an approved comment as shown under a tale.
// Author is nil when the author's profile could not be joined.
type PublicComment struct {
	Comment
	Author *AuthorSummary `json:"author"`
}

// OwnComment is a comment in its author's history.
// TaleTitle is nil when the parent tale could not be joined.
type OwnComment struct {
	Comment
	TaleTitle *string `json:"tale_title"`
}

// # Constraints

const (
	// MaxContentLength caps comment length in characters.
	MaxContentLength = 2000

	// ModerationNotice is returned to the author after a successful submission.
	ModerationNotice = "Comentário enviado! Ele será revisado antes de ser publicado."
)

// Field identifiers used in validation details.
const FieldContent = "content"
