// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"

	"github.com/taibuivan/hondana/pkg/pagination"
)

// Repository abstracts bookmark persistence.
type Repository interface {
	// ListPageByUser pages over a user's live bookmarks (bare rows).
	ListPageByUser(context context.Context, userID string, plan pagination.Plan) (pagination.Page[*Bookmark], error)

	// FindWithLocations hydrates book and page locations for the given IDs.
	FindWithLocations(context context.Context, ids []int64) ([]*Bookmark, error)

	// GetByID returns a bookmark regardless of its deletion state.
	GetByID(context context.Context, id int64) (*Bookmark, error)

	// FindByUserAndPage returns the user's bookmark of a page, deleted or
	// not, for the revival flow. (nil, nil) when none exists.
	FindByUserAndPage(context context.Context, userID string, pageContentID int64) (*Bookmark, error)

	Create(context context.Context, bookmark *Bookmark) error
	Update(context context.Context, bookmark *Bookmark) error

	// PageExists reports whether an active page content with the ID exists.
	PageExists(context context.Context, pageContentID int64) (bool, error)
}
