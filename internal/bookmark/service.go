// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// SortableColumns whitelists the bookmark sort fields.
var SortableColumns = pagination.SortColumns{
	"updatedAt": "updated_at",
	"createdAt": "created_at",
}

// DefaultSort orders bookmarks newest-activity first.
const DefaultSort = "updatedAt.desc"

// Service implements bookmark business logic.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// CreateInput carries the fields for bookmarking a page.
type CreateInput struct {
	PageContentID int64  `json:"pageContentId"`
	Note          string `json:"note"`
}

// UpdateInput carries the updatable bookmark fields.
type UpdateInput struct {
	Note string `json:"note"`
}

// GetUserBookmarks lists a user's live bookmarks with page locations
// hydrated.
func (service *Service) GetUserBookmarks(context context.Context, userID string, plan pagination.Plan) (pagination.Page[*Bookmark], error) {
	page, err := service.repository.ListPageByUser(context, userID, plan)
	if err != nil {
		return pagination.Page[*Bookmark]{}, err
	}
	return pagination.ApplyTwoQueryStrategy(context, page, service.repository.FindWithLocations,
		func(bookmark *Bookmark) int64 { return bookmark.ID })
}

/*
CreateBookmark bookmarks a page for the user.

A live duplicate conflicts; a previously removed bookmark of the same
page revives the soft-deleted row with the new note.

Parameters:
  - context: request-scoped context.
  - userID: the authenticated caller.
  - input: validated bookmark fields.

Returns:
  - *Bookmark: the stored bookmark.
  - error: apperr.NotFound for an unknown page, apperr.Conflict when the
    page is already bookmarked.
*/
func (service *Service) CreateBookmark(context context.Context, userID string, input CreateInput) (*Bookmark, error) {
	exists, err := service.repository.PageExists(context, input.PageContentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Page content")
	}

	existing, err := service.repository.FindByUserAndPage(context, userID, input.PageContentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsDeleted {
			return nil, apperr.Conflict("You have already bookmarked this page")
		}
		existing.Note = input.Note
		existing.IsDeleted = false
		if err := service.repository.Update(context, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	created := &Bookmark{UserID: userID, PageContentID: input.PageContentID, Note: input.Note}
	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBookmark changes the note of the caller's bookmark.
func (service *Service) UpdateBookmark(context context.Context, userID string, id int64, input UpdateInput) (*Bookmark, error) {
	existing, err := service.repository.GetByID(context, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted {
		return nil, apperr.NotFound("Bookmark")
	}
	if existing.UserID != userID {
		return nil, apperr.Forbidden("You can only modify your own bookmark")
	}

	existing.Note = input.Note
	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBookmark soft-deletes the caller's bookmark.
func (service *Service) DeleteBookmark(context context.Context, userID string, id int64) error {
	existing, err := service.repository.GetByID(context, id)
	if err != nil {
		return err
	}
	if existing.IsDeleted {
		return apperr.NotFound("Bookmark")
	}
	if existing.UserID != userID {
		return apperr.Forbidden("You can only modify your own bookmark")
	}

	existing.IsDeleted = true
	return service.repository.Update(context, existing)
}
