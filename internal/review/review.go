// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements book reviews.

A user holds at most one live review per book. Deleting a review is a
soft delete; posting again for the same book revives the deleted row
instead of inserting a second one. Every mutation schedules a derived
stats recompute for the affected book.
*/
package review

import (
	"time"

	"github.com/taibuivan/hondana/internal/book"
)

// Review represents one user's review of a book.
//
// UserName and AvatarPath are denormalized from the author, and Book is
// hydrated by the relation fetch of the two-query strategy.
type Review struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"userId"`
	UserName   string     `json:"name"`
	AvatarPath string     `json:"avatarPath"`
	BookID     string     `json:"-"`
	Comment    string     `json:"comment"`
	Rating     float64    `json:"rating"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	IsDeleted  bool       `json:"-"`
	Book       *book.Book `json:"book,omitempty"`
}

// # Field Identifiers

const (
	FieldBookID  = "bookId"
	FieldComment = "comment"
	FieldRating  = "rating"
)
