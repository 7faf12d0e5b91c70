// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hondana/internal/bookmark"
	"github.com/taibuivan/hondana/internal/favorite"
	"github.com/taibuivan/hondana/internal/platform/constants"
	requestutil "github.com/taibuivan/hondana/internal/platform/request"
	"github.com/taibuivan/hondana/internal/platform/respond"
	"github.com/taibuivan/hondana/internal/platform/validate"
	"github.com/taibuivan/hondana/internal/review"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// Handler serves the /me profile surface and the /admin/users surface.
// The activity listings delegate to the owning domain services.
type Handler struct {
	service   *Service
	reviews   *review.Service
	favorites *favorite.Service
	bookmarks *bookmark.Service
}

func NewHandler(service *Service, reviews *review.Service, favorites *favorite.Service, bookmarks *bookmark.Service) *Handler {
	return &Handler{
		service:   service,
		reviews:   reviews,
		favorites: favorites,
		bookmarks: bookmarks,
	}
}

// RegisterMeRoutes mounts the authenticated self-service routes.
func (handler *Handler) RegisterMeRoutes(router chi.Router) {
	router.Get("/profile", handler.getProfile)
	router.Get("/profile-counts", handler.getProfileCounts)
	router.Get("/reviews", handler.listMyReviews)
	router.Get("/favorites", handler.listMyFavorites)
	router.Get("/bookmarks", handler.listMyBookmarks)
	router.Put("/profile", handler.updateProfile)
	router.Put("/email", handler.changeEmail)
	router.Put("/password", handler.changePassword)
}

// RegisterAdminRoutes mounts the user-administration routes. The caller
// wraps the router in the admin role guard.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/users", handler.listUsers)
	router.Get("/users/{id}", handler.getUser)
	router.Delete("/users/{id}", handler.deleteUser)
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) getProfileCounts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	counts, err := handler.service.GetProfileCounts(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

func (handler *Handler) listMyReviews(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan := pagination.FromRequest(request, constants.DefaultMyReviewPageSize, review.DefaultSort, review.SortableColumns.Fields())
	page, err := handler.reviews.GetUserReviews(request.Context(), userID, request.URL.Query().Get("bookId"), plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

func (handler *Handler) listMyFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan := pagination.FromRequest(request, constants.DefaultFavoritePageSize, favorite.DefaultSort, favorite.SortableColumns.Fields())
	page, err := handler.favorites.GetUserFavorites(request.Context(), userID, plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

func (handler *Handler) listMyBookmarks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan := pagination.FromRequest(request, constants.DefaultBookmarkPageSize, bookmark.DefaultSort, bookmark.SortableColumns.Fields())
	page, err := handler.bookmarks.GetUserBookmarks(request.Context(), userID, plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	validator := &validate.Validator{}
	err = validator.
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		MaxLen(FieldAvatarPath, input.AvatarPath, 255).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) changeEmail(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangeEmailInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	validator := &validate.Validator{}
	err = validator.
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldCurrentPassword, input.CurrentPassword).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.ChangeEmail(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangePasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	validator := &validate.Validator{}
	err = validator.
		Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	plan := pagination.FromRequest(request, constants.DefaultUserPageSize, DefaultSort, SortableColumns.Fields())
	page, err := handler.service.ListUsers(request.Context(), plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	account, err := handler.service.GetUser(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteUser(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
