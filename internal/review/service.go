// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/pkg/pagination"
	"github.com/taibuivan/hondana/pkg/pointer"
)

// SortableColumns whitelists the review sort fields.
var SortableColumns = pagination.SortColumns{
	"updatedAt": "updated_at",
	"createdAt": "created_at",
	"rating":    "rating",
}

// DefaultSort orders reviews newest-activity first.
const DefaultSort = "updatedAt.desc"

// Service implements review business logic.
type Service struct {
	repository Repository
	cache      StatsCache
	notifier   StatsNotifier
	logger     *slog.Logger
}

/*
NewService creates a review Service.

Parameters:
  - repository: review persistence.
  - cache: read-through cache for aggregated stats. May be nil.
  - notifier: background stats recompute scheduler.
  - logger: structured logger.

Returns:
  - *Service: the assembled service.
*/
func NewService(repository Repository, cache StatsCache, notifier StatsNotifier, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreateInput carries the fields for posting a review.
type CreateInput struct {
	BookID  string  `json:"bookId"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// UpdateInput carries the updatable review fields. Nil fields are left
// unchanged.
type UpdateInput struct {
	Comment *string  `json:"comment"`
	Rating  *float64 `json:"rating"`
}

/*
GetBookReviews lists a book's live reviews, newest activity first by
default, with author and book data hydrated.

Parameters:
  - context: request-scoped context.
  - bookID: the reviewed book.
  - plan: validated pagination plan.

Returns:
  - pagination.Page[*Review]: the hydrated page.
  - error: apperr.NotFound when the book does not exist.
*/
func (service *Service) GetBookReviews(context context.Context, bookID string, plan pagination.Plan) (pagination.Page[*Review], error) {
	exists, err := service.repository.BookExists(context, bookID)
	if err != nil {
		return pagination.Page[*Review]{}, err
	}
	if !exists {
		return pagination.Page[*Review]{}, apperr.NotFound("Book")
	}

	page, err := service.repository.ListPageByBook(context, bookID, plan)
	if err != nil {
		return pagination.Page[*Review]{}, err
	}
	return service.hydrate(context, page)
}

// GetUserReviews lists a user's live reviews; bookID narrows to one book
// when non-empty.
func (service *Service) GetUserReviews(context context.Context, userID, bookID string, plan pagination.Plan) (pagination.Page[*Review], error) {
	page, err := service.repository.ListPageByUser(context, userID, bookID, plan)
	if err != nil {
		return pagination.Page[*Review]{}, err
	}
	return service.hydrate(context, page)
}

/*
GetBookReviewStats returns the aggregated review count and average rating
for a book, serving from cache when possible.

Parameters:
  - context: request-scoped context.
  - bookID: the book to aggregate.

Returns:
  - stats.ReviewStats: the aggregate.
  - error: persistence failure.
*/
func (service *Service) GetBookReviewStats(context context.Context, bookID string) (stats.ReviewStats, error) {
	if service.cache != nil {
		cached, err := service.cache.GetReviewStats(context, bookID)
		if err != nil {
			service.logger.Warn("review stats cache read failed", "book_id", bookID, "error", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	aggregate, err := service.repository.Stats(context, bookID)
	if err != nil {
		return stats.ReviewStats{}, err
	}

	if service.cache != nil {
		if err := service.cache.SetReviewStats(context, aggregate); err != nil {
			service.logger.Warn("review stats cache write failed", "book_id", bookID, "error", err)
		}
	}
	return aggregate, nil
}

/*
CreateReview posts a review for a book.

If the user already holds a live review of the book the call conflicts.
If their previous review was deleted, the deleted row is revived with
the new comment and rating instead of inserting a duplicate.

Parameters:
  - context: request-scoped context.
  - userID: the authenticated author.
  - input: validated review fields.

Returns:
  - *Review: the stored review.
  - error: apperr.NotFound for an unknown book, apperr.Conflict when a
    live review already exists.
*/
func (service *Service) CreateReview(context context.Context, userID string, input CreateInput) (*Review, error) {
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
			return nil, apperr.Conflict("You have already reviewed this book")
		}
		existing.Comment = input.Comment
		existing.Rating = input.Rating
		existing.IsDeleted = false
		if err := service.repository.Update(context, existing); err != nil {
			return nil, err
		}
		service.notifier.Enqueue(input.BookID)
		return existing, nil
	}

	created := &Review{
		UserID:  userID,
		BookID:  input.BookID,
		Comment: input.Comment,
		Rating:  input.Rating,
	}
	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}
	service.notifier.Enqueue(input.BookID)
	return created, nil
}

/*
UpdateReview changes the comment and/or rating of the caller's review.

Parameters:
  - context: request-scoped context.
  - userID: the authenticated caller.
  - id: review identifier.
  - input: fields to change; nil fields keep their value.

Returns:
  - *Review: the updated review.
  - error: apperr.NotFound for an unknown or deleted review,
    apperr.Forbidden when the caller is not the author.
*/
func (service *Service) UpdateReview(context context.Context, userID string, id int64, input UpdateInput) (*Review, error) {
	existing, err := service.repository.GetByID(context, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted {
		return nil, apperr.NotFound("Review")
	}
	if existing.UserID != userID {
		return nil, apperr.Forbidden("You can only modify your own review")
	}

	existing.Comment = pointer.Fallback(input.Comment, existing.Comment)
	existing.Rating = pointer.Fallback(input.Rating, existing.Rating)
	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}
	service.notifier.Enqueue(existing.BookID)
	return existing, nil
}

// DeleteReview soft-deletes the caller's review and schedules a stats
// recompute for the book.
func (service *Service) DeleteReview(context context.Context, userID string, id int64) error {
	existing, err := service.repository.GetByID(context, id)
	if err != nil {
		return err
	}
	if existing.IsDeleted {
		return apperr.NotFound("Review")
	}
	if existing.UserID != userID {
		return apperr.Forbidden("You can only modify your own review")
	}

	existing.IsDeleted = true
	if err := service.repository.Update(context, existing); err != nil {
		return err
	}
	service.notifier.Enqueue(existing.BookID)
	return nil
}

// hydrate applies the two-query strategy, refetching the page's IDs with
// author and book relations attached.
func (service *Service) hydrate(context context.Context, page pagination.Page[*Review]) (pagination.Page[*Review], error) {
	return pagination.ApplyTwoQueryStrategy(context, page, service.repository.FindWithRelations,
		func(review *Review) int64 { return review.ID })
}
