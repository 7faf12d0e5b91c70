// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/book"
	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// fakeRepository records the filters and ID sets it is asked for.
type fakeRepository struct {
	books        []*book.Book
	lastFilter   book.Filter
	hydratedIDs  []string
	hydrateCalls int
}

func (repo *fakeRepository) ListPage(_ context.Context, filter book.Filter, plan pagination.Plan) (pagination.Page[*book.Book], error) {
	repo.lastFilter = filter

	start := plan.Offset()
	if start > len(repo.books) {
		start = len(repo.books)
	}
	end := start + plan.Limit()
	if end > len(repo.books) {
		end = len(repo.books)
	}

	return pagination.Page[*book.Book]{
		Items:      repo.books[start:end],
		TotalItems: int64(len(repo.books)),
		Plan:       plan,
	}, nil
}

func (repo *fakeRepository) FindWithGenres(_ context.Context, ids []string) ([]*book.Book, error) {
	repo.hydrateCalls++
	repo.hydratedIDs = ids

	result := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		for _, candidate := range repo.books {
			if candidate.ID == id {
				hydrated := *candidate
				hydrated.GenreIDs = []int64{1, 2}
				result = append(result, &hydrated)
			}
		}
	}
	return result, nil
}

func (repo *fakeRepository) GetByID(_ context.Context, id string) (*book.Book, error) {
	for _, candidate := range repo.books {
		if candidate.ID == id {
			return candidate, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (repo *fakeRepository) ListChapters(_ context.Context, bookID string) ([]book.Chapter, error) {
	return []book.Chapter{
		{ChapterNumber: 1, ChapterTitle: "Beginnings", PageNumbers: []int64{1, 2, 3}},
		{ChapterNumber: 2, ChapterTitle: "Endings", PageNumbers: []int64{1, 2}},
	}, nil
}

func (repo *fakeRepository) GetPageContent(_ context.Context, bookID string, chapterNumber, pageNumber int64) (*book.PageContent, error) {
	return nil, apperr.NotFound("Page")
}

func seededRepository() *fakeRepository {
	publication := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &fakeRepository{books: []*book.Book{
		{ID: "b1", Title: "First", PublicationDate: publication},
		{ID: "b2", Title: "Second", PublicationDate: publication},
		{ID: "b3", Title: "Third", PublicationDate: publication},
	}}
}

func newService(repo book.Repository) *book.Service {
	return book.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_GetBooks_HydratesPageIDs verifies the two-query flow: the
detail fetch receives exactly the IDs of the first page.
*/
func TestService_GetBooks_HydratesPageIDs(t *testing.T) {
	repo := seededRepository()
	service := newService(repo)

	plan := pagination.BuildQueryPlan(1, 2, "popularity.desc", book.SortableColumns.Fields())
	page, err := service.GetBooks(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.hydrateCalls)
	assert.Equal(t, []string{"b1", "b2"}, repo.hydratedIDs)

	require.Len(t, page.Items, 2)
	assert.Equal(t, []int64{1, 2}, page.Items[0].GenreIDs)
	assert.Equal(t, int64(3), page.TotalItems)
}

/*
TestService_Discover_RejectsUnknownCondition maps a bad condition to 400.
*/
func TestService_Discover_RejectsUnknownCondition(t *testing.T) {
	service := newService(seededRepository())

	plan := pagination.BuildQueryPlan(1, 20, "popularity.desc", book.SortableColumns.Fields())
	_, err := service.DiscoverBooks(context.Background(), "1,2", book.Condition("XOR"), plan)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
}

/*
TestService_Discover_ConditionFilters exercise SINGLE/AND/OR translation.
*/
func TestService_Discover_ConditionFilters(t *testing.T) {
	tests := []struct {
		name         string
		condition    book.Condition
		wantGenreIDs []int64
		wantMatchAll bool
	}{
		{"single_keeps_first_id", book.ConditionSingle, []int64{7}, false},
		{"and_requires_all", book.ConditionAnd, []int64{7, 8, 9}, true},
		{"or_matches_any", book.ConditionOr, []int64{7, 8, 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepository()
			service := newService(repo)

			plan := pagination.BuildQueryPlan(1, 20, "popularity.desc", book.SortableColumns.Fields())
			_, err := service.DiscoverBooks(context.Background(), "7,8,9", tt.condition, plan)
			require.NoError(t, err)

			assert.Equal(t, tt.wantGenreIDs, repo.lastFilter.GenreIDs)
			assert.Equal(t, tt.wantMatchAll, repo.lastFilter.MatchAll)
		})
	}
}

/*
TestService_Discover_RejectsMalformedIDs covers non-numeric genre IDs.
*/
func TestService_Discover_RejectsMalformedIDs(t *testing.T) {
	service := newService(seededRepository())

	plan := pagination.BuildQueryPlan(1, 20, "popularity.desc", book.SortableColumns.Fields())
	_, err := service.DiscoverBooks(context.Background(), "1,abc", book.ConditionOr, plan)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
}

/*
TestService_NewReleases pins the fixed shelf parameters.
*/
func TestService_NewReleases(t *testing.T) {
	repo := seededRepository()
	service := newService(repo)

	page, err := service.GetNewReleases(context.Background())
	require.NoError(t, err)

	assert.Equal(t, book.NewReleasesLimit, page.Plan.PageSize)
	assert.Equal(t, "publicationDate", page.Plan.Primary.Field)
	assert.Equal(t, pagination.DESC, page.Plan.Primary.Direction)
}

/*
TestService_TableOfContents stitches book title and chapters together.
*/
func TestService_TableOfContents(t *testing.T) {
	service := newService(seededRepository())

	toc, err := service.GetTableOfContents(context.Background(), "b2")
	require.NoError(t, err)

	assert.Equal(t, "b2", toc.BookID)
	assert.Equal(t, "Second", toc.Title)
	require.Len(t, toc.Chapters, 2)
	assert.Equal(t, []int64{1, 2, 3}, toc.Chapters[0].PageNumbers)
}

/*
TestService_TableOfContents_UnknownBook propagates NotFound.
*/
func TestService_TableOfContents_UnknownBook(t *testing.T) {
	service := newService(seededRepository())

	_, err := service.GetTableOfContents(context.Background(), "missing")
	require.Error(t, err)
	assert.NotNil(t, apperr.As(err))
}
