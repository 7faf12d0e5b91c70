// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hondana/internal/platform/ctxutil"
	"github.com/taibuivan/hondana/internal/platform/respond"
)

// Handler exposes the admin-facing stats maintenance endpoint.
type Handler struct {
	recalculator *Recalculator
}

// NewHandler constructs a stats [Handler].
func NewHandler(recalculator *Recalculator) *Handler {
	return &Handler{recalculator: recalculator}
}

// RegisterRoutes mounts the stats routes. The caller is responsible for
// wrapping them in the admin role guard.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/books/recalculate-stats", handler.recalculateAll)
}

/*
RecalculateAll triggers a full rebuild of every book's derived statistics.

POST /admin/books/recalculate-stats

Description: Kicks off the rebuild in a detached goroutine and returns
immediately; progress and failures surface in the server logs.

Response:
  - 202: Accepted: Rebuild started
*/
func (handler *Handler) recalculateAll(writer http.ResponseWriter, request *http.Request) {
	logger := ctxutil.GetLogger(request.Context())

	// Detach from the request context so the rebuild outlives the response.
	go func() {
		if err := handler.recalculator.RecomputeAll(context.Background()); err != nil {
			logger.Error("stats_full_rebuild_failed", "error", err.Error())
		}
	}()

	respond.JSON(writer, http.StatusAccepted, respond.SuccessEnvelope{
		Data: map[string]string{"message": "Statistics rebuild started"},
	})
}
