// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/hondana/pkg/pagination"
)

// Filter narrows the paged book listing.
//
// A zero Filter lists the whole active catalogue. Keyword and GenreIDs are
// mutually exclusive in practice (search vs discover), but the store treats
// them uniformly.
type Filter struct {
	Keyword  string
	GenreIDs []int64
	MatchAll bool // true: books must carry every genre in GenreIDs
}

// Repository abstracts book persistence.
type Repository interface {
	// ListPage runs the first half of the two-query strategy: a paged,
	// sorted, counted query over bare book rows (no relations).
	ListPage(context context.Context, filter Filter, plan pagination.Plan) (pagination.Page[*Book], error)

	// FindWithGenres runs the second half: fetch the given books with
	// their genre IDs hydrated, in no particular order.
	FindWithGenres(context context.Context, ids []string) ([]*Book, error)

	// GetByID returns one active book with full genre objects.
	GetByID(context context.Context, id string) (*Book, error)

	// ListChapters returns the active chapters of a book with their page
	// numbers, ordered by chapter number.
	ListChapters(context context.Context, bookID string) ([]Chapter, error)

	// GetPageContent returns one readable page with its chapter context.
	GetPageContent(context context.Context, bookID string, chapterNumber, pageNumber int64) (*PageContent, error)
}
