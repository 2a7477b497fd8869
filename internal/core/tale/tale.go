// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tale provides read access to the published narratives.

Tales are written by the editorial team out of band. The application never
edits or deletes them, which is what makes the detail cache safe: a cached
tale cannot go stale, it can only expire.
*/
package tale

import (
	"strings"
	"time"
	"unicode/utf8"
)

// # Listing Limits

const (
	// FeaturedLimit is the number of tales shown on the landing view.
	FeaturedLimit = 3

	// ExcerptLength is the rune length of card excerpts.
	ExcerptLength = 200
)

// # Domain Entity

// Tale is a published urban-legend narrative.
type Tale struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Location    string    `json:"location"`
	Year        int       `json:"year"`
	Interviewee string    `json:"interviewee"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

// Excerpt returns the first n runes of the content, cut at a word boundary
// when one exists, followed by an ellipsis. Short content is returned as is.
func (tale *Tale) Excerpt(n int) string {
	content := strings.TrimSpace(tale.Content)
	if utf8.RuneCountInString(content) <= n {
		return content
	}

	runes := []rune(content)
	cut := string(runes[:n])
	if space := strings.LastIndexAny(cut, " \n\t"); space > 0 {
		cut = cut[:space]
	}

	return strings.TrimRight(cut, " ,.;:") + "…"
}
