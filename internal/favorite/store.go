// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"

	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// Repository abstracts favorite persistence.
type Repository interface {
	// ListPageByUser pages over a user's live favorites (bare rows).
	ListPageByUser(context context.Context, userID string, plan pagination.Plan) (pagination.Page[*Favorite], error)

	// FindWithBooks hydrates the favorited books for the given IDs.
	FindWithBooks(context context.Context, ids []int64) ([]*Favorite, error)

	// GetByID returns a favorite regardless of its deletion state.
	GetByID(context context.Context, id int64) (*Favorite, error)

	// FindByUserAndBook returns the user's favorite of a book, deleted or
	// not, for the revival flow. (nil, nil) when none exists.
	FindByUserAndBook(context context.Context, userID, bookID string) (*Favorite, error)

	Create(context context.Context, favorite *Favorite) error
	Update(context context.Context, favorite *Favorite) error

	// Stats counts the live favorites of a book.
	Stats(context context.Context, bookID string) (stats.FavoriteStats, error)

	// BookExists reports whether an active book with the ID exists.
	BookExists(context context.Context, bookID string) (bool, error)
}

// StatsCache is the read-through cache for favorite statistics.
type StatsCache interface {
	GetFavoriteStats(context context.Context, bookID string) (*stats.FavoriteStats, error)
	SetFavoriteStats(context context.Context, value stats.FavoriteStats) error
	InvalidateBook(context context.Context, bookID string) error
}
