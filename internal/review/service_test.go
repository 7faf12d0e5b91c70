// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/book"
	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/review"
	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/pkg/pagination"
	"github.com/taibuivan/hondana/pkg/pointer"
)

type fakeRepository struct {
	reviews      map[int64]*review.Review
	nextID       int64
	books        map[string]bool
	hydrateCalls int
	hydratedIDs  []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reviews: map[int64]*review.Review{},
		books:   map[string]bool{},
		nextID:  1,
	}
}

func (fake *fakeRepository) ListPageByBook(_ context.Context, bookID string, plan pagination.Plan) (pagination.Page[*review.Review], error) {
	items := []*review.Review{}
	for _, stored := range fake.reviews {
		if !stored.IsDeleted && stored.BookID == bookID {
			items = append(items, stored)
		}
	}
	return pagination.Page[*review.Review]{Items: items, TotalItems: int64(len(items)), Plan: plan}, nil
}

func (fake *fakeRepository) ListPageByUser(_ context.Context, userID, bookID string, plan pagination.Plan) (pagination.Page[*review.Review], error) {
	items := []*review.Review{}
	for _, stored := range fake.reviews {
		if stored.IsDeleted || stored.UserID != userID {
			continue
		}
		if bookID != "" && stored.BookID != bookID {
			continue
		}
		items = append(items, stored)
	}
	return pagination.Page[*review.Review]{Items: items, TotalItems: int64(len(items)), Plan: plan}, nil
}

func (fake *fakeRepository) FindWithRelations(_ context.Context, ids []int64) ([]*review.Review, error) {
	fake.hydrateCalls++
	fake.hydratedIDs = ids

	hydrated := []*review.Review{}
	for _, id := range ids {
		stored, ok := fake.reviews[id]
		if !ok {
			continue
		}
		clone := *stored
		clone.UserName = "Reader " + clone.UserID
		clone.Book = &book.Book{ID: clone.BookID, Title: "Title of " + clone.BookID}
		hydrated = append(hydrated, &clone)
	}
	return hydrated, nil
}

func (fake *fakeRepository) GetByID(_ context.Context, id int64) (*review.Review, error) {
	stored, ok := fake.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return stored, nil
}

func (fake *fakeRepository) FindByUserAndBook(_ context.Context, userID, bookID string) (*review.Review, error) {
	for _, stored := range fake.reviews {
		if stored.UserID == userID && stored.BookID == bookID {
			return stored, nil
		}
	}
	return nil, nil
}

func (fake *fakeRepository) Create(_ context.Context, created *review.Review) error {
	created.ID = fake.nextID
	fake.nextID++
	fake.reviews[created.ID] = created
	return nil
}

func (fake *fakeRepository) Update(_ context.Context, updated *review.Review) error {
	fake.reviews[updated.ID] = updated
	return nil
}

func (fake *fakeRepository) Stats(_ context.Context, bookID string) (stats.ReviewStats, error) {
	aggregate := stats.ReviewStats{BookID: bookID}
	var sum float64
	for _, stored := range fake.reviews {
		if !stored.IsDeleted && stored.BookID == bookID {
			aggregate.ReviewCount++
			sum += stored.Rating
		}
	}
	if aggregate.ReviewCount > 0 {
		aggregate.AverageRating = stats.Round2(sum / float64(aggregate.ReviewCount))
	}
	return aggregate, nil
}

func (fake *fakeRepository) BookExists(_ context.Context, bookID string) (bool, error) {
	return fake.books[bookID], nil
}

type fakeNotifier struct {
	enqueued []string
}

func (fake *fakeNotifier) Enqueue(bookID string) {
	fake.enqueued = append(fake.enqueued, bookID)
}

type fakeCache struct {
	stored map[string]stats.ReviewStats
	hits   int
	writes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: map[string]stats.ReviewStats{}}
}

func (fake *fakeCache) GetReviewStats(_ context.Context, bookID string) (*stats.ReviewStats, error) {
	cached, ok := fake.stored[bookID]
	if !ok {
		return nil, nil
	}
	fake.hits++
	return &cached, nil
}

func (fake *fakeCache) SetReviewStats(_ context.Context, value stats.ReviewStats) error {
	fake.writes++
	fake.stored[value.BookID] = value
	return nil
}

func newService(repository *fakeRepository, cache *fakeCache, notifier *fakeNotifier) *review.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cache == nil {
		return review.NewService(repository, nil, notifier, logger)
	}
	return review.NewService(repository, cache, notifier, logger)
}

func TestService_CreateReview(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	created, err := service.CreateReview(context.Background(), "u1", review.CreateInput{
		BookID:  "b1",
		Comment: "A quiet masterpiece.",
		Rating:  4.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, []string{"b1"}, notifier.enqueued)
}

func TestService_CreateReview_UnknownBook(t *testing.T) {
	repository := newFakeRepository()
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	_, err := service.CreateReview(context.Background(), "u1", review.CreateInput{
		BookID:  "missing",
		Comment: "?",
		Rating:  3,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
	assert.Empty(t, notifier.enqueued)
}

func TestService_CreateReview_SecondReviewConflicts(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	_, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "first", Rating: 4})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "second", Rating: 5})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
}

func TestService_CreateReview_RevivesDeleted(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	created, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "first", Rating: 2})
	require.NoError(t, err)
	require.NoError(t, service.DeleteReview(context.Background(), "u1", created.ID))

	revived, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "changed my mind", Rating: 4.5})
	require.NoError(t, err)
	assert.Equal(t, created.ID, revived.ID)
	assert.False(t, revived.IsDeleted)
	assert.Equal(t, "changed my mind", revived.Comment)
	assert.InDelta(t, 4.5, revived.Rating, 0.001)

	// create, delete, revive each schedule a recompute
	assert.Equal(t, []string{"b1", "b1", "b1"}, notifier.enqueued)
}

func TestService_UpdateReview_OwnerOnly(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	created, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "mine", Rating: 3})
	require.NoError(t, err)

	_, err = service.UpdateReview(context.Background(), "intruder", created.ID, review.UpdateInput{Comment: pointer.To("not yours")})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
}

func TestService_UpdateReview_PartialFields(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	created, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "kept", Rating: 3})
	require.NoError(t, err)

	updated, err := service.UpdateReview(context.Background(), "u1", created.ID, review.UpdateInput{Rating: pointer.To(4.0)})
	require.NoError(t, err)
	assert.Equal(t, "kept", updated.Comment)
	assert.InDelta(t, 4.0, updated.Rating, 0.001)
}

func TestService_DeleteReview(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	created, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "gone soon", Rating: 1})
	require.NoError(t, err)

	require.NoError(t, service.DeleteReview(context.Background(), "u1", created.ID))
	assert.Equal(t, []string{"b1", "b1"}, notifier.enqueued)

	err = service.DeleteReview(context.Background(), "u1", created.ID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestService_GetBookReviews_HydratesRelations(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	notifier := &fakeNotifier{}
	service := newService(repository, nil, notifier)

	_, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "great", Rating: 5})
	require.NoError(t, err)

	plan := pagination.BuildQueryPlan(1, 3, review.DefaultSort, review.SortableColumns.Fields())
	page, err := service.GetBookReviews(context.Background(), "b1", plan)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, repository.hydrateCalls)
	assert.Equal(t, "Reader u1", page.Items[0].UserName)
	require.NotNil(t, page.Items[0].Book)
	assert.Equal(t, "b1", page.Items[0].Book.ID)
}

func TestService_GetBookReviews_UnknownBook(t *testing.T) {
	repository := newFakeRepository()
	service := newService(repository, nil, &fakeNotifier{})

	plan := pagination.BuildQueryPlan(1, 3, review.DefaultSort, review.SortableColumns.Fields())
	_, err := service.GetBookReviews(context.Background(), "missing", plan)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestService_GetBookReviewStats_ReadThrough(t *testing.T) {
	repository := newFakeRepository()
	repository.books["b1"] = true
	cache := newFakeCache()
	service := newService(repository, cache, &fakeNotifier{})

	_, err := service.CreateReview(context.Background(), "u1", review.CreateInput{BookID: "b1", Comment: "x", Rating: 4})
	require.NoError(t, err)
	_, err = service.CreateReview(context.Background(), "u2", review.CreateInput{BookID: "b1", Comment: "y", Rating: 5})
	require.NoError(t, err)

	first, err := service.GetBookReviewStats(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.ReviewCount)
	assert.InDelta(t, 4.5, first.AverageRating, 0.001)
	assert.Equal(t, 1, cache.writes)
	assert.Equal(t, 0, cache.hits)

	second, err := service.GetBookReviewStats(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.writes)
}
