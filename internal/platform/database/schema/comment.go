// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CommentTable represents the 'comments' table
type CommentTable struct {
	Table     string
	ID        string
	TaleID    string
	UserID    string
	Content   string
	Approved  string
	CreatedAt string

	// TaleFKey and UserFKey are the foreign keys on TaleID and UserID
	TaleFKey string
	UserFKey string
}

// Comment is the schema definition for comments
var Comment = CommentTable{
	Table:     "comments",
	ID:        "id",
	TaleID:    "tale_id",
	UserID:    "user_id",
	Content:   "content",
	Approved:  "approved",
	CreatedAt: "created_at",
	TaleFKey:  "comments_tale_id_fkey",
	UserFKey:  "comments_user_id_fkey",
}

// Columns returns all standard column names
func (t CommentTable) Columns() []string {
	return []string{t.ID, t.TaleID, t.UserID, t.Content, t.Approved, t.CreatedAt}
}
