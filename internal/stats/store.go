// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import "context"

// Store abstracts the persistence operations needed by the recalculator.
type Store interface {
	// AggregateReviews returns the count and average rating over a book's
	// non-deleted reviews. A book with no reviews yields a zero aggregate.
	AggregateReviews(context context.Context, bookID string) (ReviewAggregate, error)

	// SaveBookStats persists the derived metrics onto the book row.
	// Returns apperr.NotFound if the book does not exist or is deleted.
	SaveBookStats(context context.Context, bookID string, reviewCount int64, averageRating, popularity float64) error

	// ActiveBookIDs returns a page of non-deleted book IDs ordered by ID.
	ActiveBookIDs(context context.Context, offset, limit int) ([]string, error)
}

// Invalidator drops cached statistics for a book after a recompute.
type Invalidator interface {
	InvalidateBook(context context.Context, bookID string) error
}
