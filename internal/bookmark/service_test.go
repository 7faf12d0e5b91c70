// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/bookmark"
	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/pkg/pagination"
)

type fakeRepository struct {
	bookmarks map[int64]*bookmark.Bookmark
	nextID    int64
	pages     map[int64]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bookmarks: map[int64]*bookmark.Bookmark{},
		pages:     map[int64]bool{},
		nextID:    1,
	}
}

func (fake *fakeRepository) ListPageByUser(_ context.Context, userID string, plan pagination.Plan) (pagination.Page[*bookmark.Bookmark], error) {
	items := []*bookmark.Bookmark{}
	for _, stored := range fake.bookmarks {
		if !stored.IsDeleted && stored.UserID == userID {
			items = append(items, stored)
		}
	}
	return pagination.Page[*bookmark.Bookmark]{Items: items, TotalItems: int64(len(items)), Plan: plan}, nil
}

func (fake *fakeRepository) FindWithLocations(_ context.Context, ids []int64) ([]*bookmark.Bookmark, error) {
	hydrated := []*bookmark.Bookmark{}
	for _, id := range ids {
		stored, ok := fake.bookmarks[id]
		if !ok {
			continue
		}
		clone := *stored
		clone.BookID = "b1"
		clone.BookTitle = "Hydrated Title"
		clone.ChapterNumber = 2
		clone.PageNumber = 14
		hydrated = append(hydrated, &clone)
	}
	return hydrated, nil
}

func (fake *fakeRepository) GetByID(_ context.Context, id int64) (*bookmark.Bookmark, error) {
	stored, ok := fake.bookmarks[id]
	if !ok {
		return nil, apperr.NotFound("Bookmark")
	}
	return stored, nil
}

func (fake *fakeRepository) FindByUserAndPage(_ context.Context, userID string, pageContentID int64) (*bookmark.Bookmark, error) {
	for _, stored := range fake.bookmarks {
		if stored.UserID == userID && stored.PageContentID == pageContentID {
			return stored, nil
		}
	}
	return nil, nil
}

func (fake *fakeRepository) Create(_ context.Context, created *bookmark.Bookmark) error {
	created.ID = fake.nextID
	fake.nextID++
	fake.bookmarks[created.ID] = created
	return nil
}

func (fake *fakeRepository) Update(_ context.Context, updated *bookmark.Bookmark) error {
	fake.bookmarks[updated.ID] = updated
	return nil
}

func (fake *fakeRepository) PageExists(_ context.Context, pageContentID int64) (bool, error) {
	return fake.pages[pageContentID], nil
}

func newService(repository *fakeRepository) *bookmark.Service {
	return bookmark.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_CreateBookmark(t *testing.T) {
	repository := newFakeRepository()
	repository.pages[42] = true
	service := newService(repository)

	created, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{
		PageContentID: 42,
		Note:          "resume here",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "resume here", created.Note)
}

func TestService_CreateBookmark_UnknownPage(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 99})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestService_CreateBookmark_DuplicateConflicts(t *testing.T) {
	repository := newFakeRepository()
	repository.pages[42] = true
	service := newService(repository)

	_, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42})
	require.NoError(t, err)

	_, err = service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
}

func TestService_CreateBookmark_RevivesDeleted(t *testing.T) {
	repository := newFakeRepository()
	repository.pages[42] = true
	service := newService(repository)

	created, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42, Note: "old"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteBookmark(context.Background(), "u1", created.ID))

	revived, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42, Note: "new"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, revived.ID)
	assert.False(t, revived.IsDeleted)
	assert.Equal(t, "new", revived.Note)
}

func TestService_UpdateBookmark_OwnerOnly(t *testing.T) {
	repository := newFakeRepository()
	repository.pages[42] = true
	service := newService(repository)

	created, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42})
	require.NoError(t, err)

	_, err = service.UpdateBookmark(context.Background(), "intruder", created.ID, bookmark.UpdateInput{Note: "mine now"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
}

func TestService_DeleteBookmark_AlreadyDeleted(t *testing.T) {
	repository := newFakeRepository()
	repository.pages[42] = true
	service := newService(repository)

	created, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42})
	require.NoError(t, err)
	require.NoError(t, service.DeleteBookmark(context.Background(), "u1", created.ID))

	err = service.DeleteBookmark(context.Background(), "u1", created.ID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestService_GetUserBookmarks_HydratesLocations(t *testing.T) {
	repository := newFakeRepository()
	repository.pages[42] = true
	service := newService(repository)

	_, err := service.CreateBookmark(context.Background(), "u1", bookmark.CreateInput{PageContentID: 42})
	require.NoError(t, err)

	plan := pagination.BuildQueryPlan(1, 5, bookmark.DefaultSort, bookmark.SortableColumns.Fields())
	page, err := service.GetUserBookmarks(context.Background(), "u1", plan)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b1", page.Items[0].BookID)
	assert.Equal(t, int64(14), page.Items[0].PageNumber)
}
