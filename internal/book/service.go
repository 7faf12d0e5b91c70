// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/pkg/pagination"
	"github.com/taibuivan/hondana/pkg/query"
)

// SortableColumns maps the public sort fields accepted by book listings
// onto their backing columns.
var SortableColumns = pagination.SortColumns{
	"title":           "title",
	"publicationDate": "publication_date",
	"reviewCount":     "review_count",
	"averageRating":   "average_rating",
	"popularity":      "popularity",
}

const (
	// DefaultSort orders listings by popularity, newest hits first.
	DefaultSort = "popularity.desc"
	// NewReleasesLimit is the fixed size of the new-releases shelf.
	NewReleasesLimit = 10
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// listWithRelations applies the two-query strategy to any filtered listing.
func (service *Service) listWithRelations(ctx context.Context, filter Filter, plan pagination.Plan) (pagination.Page[*Book], error) {
	initial, err := service.repo.ListPage(ctx, filter, plan)
	if err != nil {
		return pagination.Page[*Book]{}, err
	}

	return pagination.ApplyTwoQueryStrategy(
		ctx,
		initial,
		func(ctx context.Context, ids []string) ([]*Book, error) {
			return service.repo.FindWithGenres(ctx, ids)
		},
		func(book *Book) string { return book.ID },
	)
}

// GetBooks returns a page of the active catalogue.
func (service *Service) GetBooks(context context.Context, plan pagination.Plan) (pagination.Page[*Book], error) {
	return service.listWithRelations(context, Filter{}, plan)
}

// GetNewReleases returns the ten most recently published books.
func (service *Service) GetNewReleases(context context.Context) (pagination.Page[*Book], error) {
	plan := pagination.BuildQueryPlan(1, NewReleasesLimit, "publicationDate.desc", SortableColumns.Fields())
	return service.listWithRelations(context, Filter{}, plan)
}

// SearchBooks returns books whose title contains the keyword.
func (service *Service) SearchBooks(context context.Context, keyword string, plan pagination.Plan) (pagination.Page[*Book], error) {
	return service.listWithRelations(context, Filter{Keyword: keyword}, plan)
}

/*
DiscoverBooks searches the catalogue by genre.

Description: The condition selects how the comma-separated genre IDs
combine: SINGLE keeps only the first ID, OR matches any, AND matches all.

Parameters:
  - context: context.Context
  - genreIDsQuery: string (comma-separated genre IDs)
  - condition: Condition
  - plan: pagination.Plan

Returns:
  - pagination.Page[*Book]: Matching books with genre IDs hydrated
  - error: apperr.BadRequest for malformed condition or IDs
*/
func (service *Service) DiscoverBooks(context context.Context, genreIDsQuery string, condition Condition, plan pagination.Plan) (pagination.Page[*Book], error) {
	if !condition.Valid() {
		return pagination.Page[*Book]{}, apperr.BadRequest("Invalid search condition")
	}

	genreIDs, err := parseGenreIDs(genreIDsQuery)
	if err != nil {
		return pagination.Page[*Book]{}, err
	}

	if condition == ConditionSingle {
		genreIDs = genreIDs[:1]
	}

	filter := Filter{
		GenreIDs: genreIDs,
		MatchAll: condition == ConditionAnd,
	}

	return service.listWithRelations(context, filter, plan)
}

// GetBookDetails returns one book with full genre objects.
func (service *Service) GetBookDetails(context context.Context, id string) (*Book, error) {
	return service.repo.GetByID(context, id)
}

// GetTableOfContents returns the chapter listing for a book.
func (service *Service) GetTableOfContents(context context.Context, id string) (*TableOfContents, error) {
	book, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	chapters, err := service.repo.ListChapters(context, id)
	if err != nil {
		return nil, err
	}

	return &TableOfContents{
		BookID:   id,
		Title:    book.Title,
		Chapters: chapters,
	}, nil
}

// GetPageContent returns one readable page of a book chapter.
func (service *Service) GetPageContent(context context.Context, bookID string, chapterNumber, pageNumber int64) (*PageContent, error) {
	return service.repo.GetPageContent(context, bookID, chapterNumber, pageNumber)
}

// parseGenreIDs splits and validates a comma-separated genre ID list.
func parseGenreIDs(raw string) ([]int64, error) {
	parts := query.StringSlice(raw)
	if len(parts) == 0 {
		return nil, apperr.BadRequest("At least one genre ID is required")
	}

	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, apperr.BadRequest("Invalid genre ID: " + part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
