// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bookmark implements per-user reading bookmarks.

A bookmark pins one page of a book's content for a user, with an optional
note. A user holds at most one live bookmark per page; removal is a soft
delete and bookmarking the same page again revives the deleted row.
*/
package bookmark

import "time"

// Bookmark represents one user's bookmarked page. The location fields are
// denormalized from the page content by the relation fetch of the
// two-query strategy.
type Bookmark struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"userId"`
	PageContentID int64     `json:"pageContentId"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	IsDeleted     bool      `json:"-"`

	BookID        string `json:"bookId,omitempty"`
	BookTitle     string `json:"bookTitle,omitempty"`
	ChapterNumber int64  `json:"chapterNumber,omitempty"`
	PageNumber    int64  `json:"pageNumber,omitempty"`
}

// # Field Identifiers

const (
	FieldPageContentID = "pageContentId"
	FieldNote          = "note"
)
