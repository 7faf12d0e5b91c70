// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

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

// Handler implements the public catalogue endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /books routes. All of them are read-only and
// publicly reachable through the auth gate's GET table.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Get("/new-releases", handler.newReleases)
	router.Get("/search", handler.searchBooks)
	router.Get("/discover", handler.discoverBooks)
	router.Get("/{id}", handler.getBookDetails)
	router.Get("/{id}/toc", handler.getTableOfContents)
}

// RegisterContentRoutes mounts the protected reading routes under /content/books.
func (handler *Handler) RegisterContentRoutes(router chi.Router) {
	router.Get("/{id}/chapters/{chapter}/pages/{page}", handler.getPageContent)
}

// bookPlan resolves the standard pagination parameters for book listings.
func bookPlan(request *http.Request) pagination.Plan {
	return pagination.FromRequest(request, constants.DefaultBookPageSize, DefaultSort, SortableColumns.Fields())
}

/*
ListBooks returns a page of the catalogue.

GET /books?page=&size=&sort=

Response:
  - 200: Envelope[Book]: Paged books sorted by popularity by default
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.GetBooks(request.Context(), bookPlan(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

/*
NewReleases returns the ten most recently published books.

GET /books/new-releases
*/
func (handler *Handler) newReleases(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.GetNewReleases(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

/*
SearchBooks returns books whose title matches the keyword.

GET /books/search?q=&page=&size=&sort=

Response:
  - 200: Envelope[Book]
  - 400: ValidationError: Missing keyword
*/
func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	keyword := request.URL.Query().Get("q")

	validator := &validate.Validator{}
	validator.Required("q", keyword)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.SearchBooks(request.Context(), keyword, bookPlan(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

/*
DiscoverBooks searches by genre IDs and combination condition.

GET /books/discover?genreIds=1,2&condition=AND&page=&size=&sort=

Response:
  - 200: Envelope[Book]
  - 400: BadRequest: Unknown condition or malformed genre IDs
*/
func (handler *Handler) discoverBooks(writer http.ResponseWriter, request *http.Request) {
	genreIDs := request.URL.Query().Get("genreIds")
	condition := Condition(request.URL.Query().Get("condition"))

	page, err := handler.service.DiscoverBooks(request.Context(), genreIDs, condition, bookPlan(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.ToEnvelope(page, page.Items))
}

/*
GetBookDetails returns one book with its full genre objects.

GET /books/{id}
*/
func (handler *Handler) getBookDetails(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	book, err := handler.service.GetBookDetails(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
GetTableOfContents returns a book's chapter listing.

GET /books/{id}/toc
*/
func (handler *Handler) getTableOfContents(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	toc, err := handler.service.GetTableOfContents(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toc)
}

/*
GetPageContent returns one readable page of a chapter.

GET /content/books/{id}/chapters/{chapter}/pages/{page}

Authenticated readers only; the auth gate blocks anonymous access to the
/content prefix.
*/
func (handler *Handler) getPageContent(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "id")

	chapterNumber, err := pathInt64(request, "chapter")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pageNumber, err := pathInt64(request, "page")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, err := handler.service.GetPageContent(request.Context(), bookID, chapterNumber, pageNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, content)
}

func pathInt64(request *http.Request, name string) (int64, error) {
	raw := requestutil.Param(request, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Invalid numeric path parameter: " + name)
	}
	return value, nil
}
