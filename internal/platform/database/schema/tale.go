// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TaleTable represents the 'tales' table
type TaleTable struct {
	Table       string
	ID          string
	Title       string
	Content     string
	Location    string
	Year        string
	Interviewee string
	Images      string
	CreatedAt   string
}

// Tale is the schema definition for tales
var Tale = TaleTable{
	Table:       "tales",
	ID:          "id",
	Title:       "title",
	Content:     "content",
	Location:    "location",
	Year:        "year",
	Interviewee: "interviewee",
	Images:      "images",
	CreatedAt:   "created_at",
}

// Columns returns all standard column names
func (t TaleTable) Columns() []string {
	return []string{t.ID, t.Title, t.Content, t.Location, t.Year, t.Interviewee, t.Images, t.CreatedAt}
}
