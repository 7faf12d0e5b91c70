// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorite implements per-user book favorites.

A user holds at most one live favorite per book; unfavoriting is a soft
delete and favoriting again revives the deleted row. Aggregated favorite
counts are served read-through from the stats cache.
*/
package favorite

import (
	"time"

	"github.com/taibuivan/hondana/internal/book"
)

// Favorite represents one user's favorited book. Book is hydrated by the
// relation fetch of the two-query strategy.
type Favorite struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"userId"`
	BookID    string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"-"`
	Book      *book.Book `json:"book,omitempty"`
}

const FieldBookID = "bookId"
