// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	requestutil "github.com/taibuivan/hondana/internal/platform/request"
	"github.com/taibuivan/hondana/internal/platform/respond"
	"github.com/taibuivan/hondana/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated bookmark routes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createBookmark)
	router.Put("/{id}", handler.updateBookmark)
	router.Delete("/{id}", handler.deleteBookmark)
}

func (handler *Handler) createBookmark(writer http.ResponseWriter, request *http.Request) {
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
	validator := &validate.Validator{}
	err = validator.
		Custom(FieldPageContentID, input.PageContentID <= 0, "must be a positive identifier").
		MaxLen(FieldNote, input.Note, 500).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateBookmark(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateBookmark(writer http.ResponseWriter, request *http.Request) {
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
	validator := &validate.Validator{}
	if err := validator.MaxLen(FieldNote, input.Note, 500).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateBookmark(request.Context(), userID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteBookmark(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteBookmark(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func pathID(request *http.Request) (int64, error) {
	raw := chi.URLParam(request, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Invalid bookmark ID: " + raw)
	}
	return id, nil
}
