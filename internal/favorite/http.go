// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

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

// RegisterRoutes mounts the authenticated favorite mutation routes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createFavorite)
	router.Delete("/{id}", handler.deleteFavorite)
}

// RegisterBookRoutes mounts the public per-book stats read. The router is
// the /books subrouter shared with the catalogue handler.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.Get("/{id}/stats/favorites", handler.bookFavoriteStats)
}

func (handler *Handler) bookFavoriteStats(writer http.ResponseWriter, request *http.Request) {
	aggregate, err := handler.service.GetBookFavoriteStats(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, aggregate)
}

func (handler *Handler) createFavorite(writer http.ResponseWriter, request *http.Request) {
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
	if err := validator.Required(FieldBookID, input.BookID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateFavorite(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) deleteFavorite(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteFavorite(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func pathID(request *http.Request) (int64, error) {
	raw := chi.URLParam(request, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Invalid favorite ID: " + raw)
	}
	return id, nil
}
