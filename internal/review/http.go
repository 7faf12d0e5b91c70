// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/constants"
	requestutil "github.com/taibuivan/hondana/internal/platform/request"
	"github.com/taibuivan/hondana/internal/platform/respond"
	"github.com/taibuivan/hondana/internal/platform/validate"
	"github.com/taibuivan/hondana/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated review mutation routes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createReview)
	router.Put("/{id}", handler.updateReview)
	router.Delete("/{id}", handler.deleteReview)
}

// RegisterBookRoutes mounts the public per-book review reads. The router
// is the /books subrouter shared with the catalogue handler.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.Get("/{id}/reviews", handler.listBookReviews)
	router.Get("/{id}/stats/reviews", handler.bookReviewStats)
}

func (handler *Handler) listBookReviews(writer http.ResponseWriter, request *http.Request) {
	plan := pagination.FromRequest(request, constants.DefaultReviewPageSize, DefaultSort, SortableColumns.Fields())

	page, err := handler.service.GetBookReviews(request.Context(), requestutil.ID(request, "id"), plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

func (handler *Handler) bookReviewStats(writer http.ResponseWriter, request *http.Request) {
	aggregate, err := handler.service.GetBookReviewStats(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, aggregate)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateReview(input.BookID, input.Comment, input.Rating); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateReview(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateReviewUpdate(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateReview(request.Context(), userID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func validateReview(bookID, comment string, rating float64) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldBookID, bookID).
		Required(FieldComment, comment).
		MaxLen(FieldComment, comment, 1000).
		Custom(FieldRating, rating < 0 || rating > 5, "must be between 0.0 and 5.0").
		Err()
}

func validateReviewUpdate(input UpdateInput) error {
	validator := &validate.Validator{}
	if input.Comment != nil {
		validator.Required(FieldComment, *input.Comment).
			MaxLen(FieldComment, *input.Comment, 1000)
	}
	if input.Rating != nil {
		validator.Custom(FieldRating, *input.Rating < 0 || *input.Rating > 5, "must be between 0.0 and 5.0")
	}
	return validator.Err()
}

func pathID(request *http.Request) (int64, error) {
	raw := chi.URLParam(request, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Invalid review ID: " + raw)
	}
	return id, nil
}
