// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// Repository abstracts review persistence.
type Repository interface {
	// ListPageByBook pages over a book's live reviews (bare rows).
	ListPageByBook(context context.Context, bookID string, plan pagination.Plan) (pagination.Page[*Review], error)

	// ListPageByUser pages over a user's live reviews; bookID narrows the
	// listing to one book when non-empty.
	ListPageByUser(context context.Context, userID, bookID string, plan pagination.Plan) (pagination.Page[*Review], error)

	// FindWithRelations hydrates author and book data for the given IDs.
	FindWithRelations(context context.Context, ids []int64) ([]*Review, error)

	// GetByID returns a review regardless of its deletion state.
	GetByID(context context.Context, id int64) (*Review, error)

	// FindByUserAndBook returns the user's review of a book, deleted or
	// not, for the revival flow. (nil, nil) when none exists.
	FindByUserAndBook(context context.Context, userID, bookID string) (*Review, error)

	Create(context context.Context, review *Review) error
	Update(context context.Context, review *Review) error

	// Stats aggregates the live reviews of a book.
	Stats(context context.Context, bookID string) (stats.ReviewStats, error)

	// BookExists reports whether an active book with the ID exists.
	BookExists(context context.Context, bookID string) (bool, error)
}

// StatsCache is the read-through cache for review statistics.
type StatsCache interface {
	GetReviewStats(context context.Context, bookID string) (*stats.ReviewStats, error)
	SetReviewStats(context context.Context, value stats.ReviewStats) error
}

// StatsNotifier schedules a background stats recompute for a book.
type StatsNotifier interface {
	Enqueue(bookID string)
}
