// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ArchiveSubmissionTable represents the 'archive_submissions' table
type ArchiveSubmissionTable struct {
	Table          string
	ID             string
	Name           string
	Email          string
	Title          string
	Location       string
	Interviewee    string
	Story          string
	AttachmentKey  string
	AttachmentType string
	CreatedAt      string
}

// ArchiveSubmission is the schema definition for archive_submissions
var ArchiveSubmission = ArchiveSubmissionTable{
	Table:          "archive_submissions",
	ID:             "id",
	Name:           "name",
	Email:          "email",
	Title:          "title",
	Location:       "location",
	Interviewee:    "interviewee",
	Story:          "story",
	AttachmentKey:  "attachment_key",
	AttachmentType: "attachment_type",
	CreatedAt:      "created_at",
}

// Columns returns all standard column names
func (t ArchiveSubmissionTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Title, t.Location, t.Interviewee,
		t.Story, t.AttachmentKey, t.AttachmentType, t.CreatedAt,
	}
}
