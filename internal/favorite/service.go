// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// SortableColumns whitelists the favorite sort fields.
var SortableColumns = pagination.SortColumns{
	"updatedAt": "updated_at",
	"createdAt": "created_at",
}

// DefaultSort orders favorites newest-activity first.
const DefaultSort = "updatedAt.desc"

// Service implements favorite business logic.
type Service struct {
	repository Repository
	cache      StatsCache
	logger     *slog.Logger
}

// NewService creates a favorite Service. cache may be nil.
func NewService(repository Repository, cache StatsCache, logger *slog.Logger) *Service {
	return &Service{repository: repository, cache: cache, logger: logger}
}

// CreateInput carries the fields for favoriting a book.
type CreateInput struct {
	BookID string `json:"bookId"`
}

// GetUserFavorites lists a user's live favorites with books hydrated.
func (service *Service) GetUserFavorites(context context.Context, userID string, plan pagination.Plan) (pagination.Page[*Favorite], error) {
	page, err := service.repository.ListPageByUser(context, userID, plan)
	if err != nil {
		return pagination.Page[*Favorite]{}, err
	}
	return pagination.ApplyTwoQueryStrategy(context, page, service.repository.FindWithBooks,
		func(favorite *Favorite) int64 { return favorite.ID })
}

/*
GetBookFavoriteStats returns the live favorite count for a book, serving
from cache when possible.

Parameters:
  - context: request-scoped context.
  - bookID: the book to count.

Returns:
  - stats.FavoriteStats: the aggregate.
  - error: persistence failure.
*/
func (service *Service) GetBookFavoriteStats(context context.Context, bookID string) (stats.FavoriteStats, error) {
	if service.cache != nil {
		cached, err := service.cache.GetFavoriteStats(context, bookID)
		if err != nil {
			service.logger.Warn("favorite stats cache read failed", "book_id", bookID, "error", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	aggregate, err := service.repository.Stats(context, bookID)
	if err != nil {
		return stats.FavoriteStats{}, err
	}

	if service.cache != nil {
		if err := service.cache.SetFavoriteStats(context, aggregate); err != nil {
			service.logger.Warn("favorite stats cache write failed", "book_id", bookID, "error", err)
		}
	}
	return aggregate, nil
}

/*
CreateFavorite favorites a book for the user.

A live duplicate conflicts; a previously unfavorited book revives the
soft-deleted row.

Parameters:
  - context: request-scoped context.
  - userID: the authenticated caller.
  - input: validated favorite fields.

Returns:
  - *Favorite: the stored favorite.
  - error: apperr.NotFound for an unknown book, apperr.Conflict when the
    book is already favorited.
*/
func (service *Service) CreateFavorite(context context.Context, userID string, input CreateInput) (*Favorite, error) {
	exists, err := service.repository.BookExists(context, input.BookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	existing, err := service.repository.FindByUserAndBook(context, userID, input.BookID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsDeleted {
			return nil, apperr.Conflict("You have already favorited this book")
		}
		existing.IsDeleted = false
		if err := service.repository.Update(context, existing); err != nil {
			return nil, err
		}
		service.invalidate(context, input.BookID)
		return existing, nil
	}

	created := &Favorite{UserID: userID, BookID: input.BookID}
	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}
	service.invalidate(context, input.BookID)
	return created, nil
}

// DeleteFavorite soft-deletes the caller's favorite.
func (service *Service) DeleteFavorite(context context.Context, userID string, id int64) error {
	existing, err := service.repository.GetByID(context, id)
	if err != nil {
		return err
	}
	if existing.IsDeleted {
		return apperr.NotFound("Favorite")
	}
	if existing.UserID != userID {
		return apperr.Forbidden("You can only modify your own favorite")
	}

	existing.IsDeleted = true
	if err := service.repository.Update(context, existing); err != nil {
		return err
	}
	service.invalidate(context, existing.BookID)
	return nil
}

// invalidate drops the cached favorite count after a mutation. A cache
// failure only degrades freshness, so it is logged and swallowed.
func (service *Service) invalidate(context context.Context, bookID string) {
	if service.cache == nil {
		return
	}
	if err := service.cache.InvalidateBook(context, bookID); err != nil {
		service.logger.Warn("favorite stats cache invalidation failed", "book_id", bookID, "error", err)
	}
}
