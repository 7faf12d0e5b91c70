// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hondana/internal/platform/request"
	"github.com/taibuivan/hondana/internal/platform/respond"
	"github.com/taibuivan/hondana/internal/platform/sec"
	"github.com/taibuivan/hondana/internal/platform/validate"
	"github.com/taibuivan/hondana/internal/user"
)

// Handler serves the root-level authentication endpoints.
type Handler struct {
	service    *Service
	refreshTTL time.Duration
}

func NewHandler(service *Service, refreshTTL time.Duration) *Handler {
	return &Handler{service: service, refreshTTL: refreshTTL}
}

// RegisterRoutes mounts the auth routes at the API root. All four are
// fully public at the gate.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/refresh-token", handler.refreshToken)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accessTokenResponse is the body of every endpoint that issues an
// access token. The refresh token is cookie-only.
type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	validator := &validate.Validator{}
	err := validator.
		Required(user.FieldEmail, input.Email).
		Email(user.FieldEmail, input.Email).
		Required(user.FieldPassword, input.Password).
		MinLen(user.FieldPassword, input.Password, 8).
		Required(user.FieldName, input.Name).
		MaxLen(user.FieldName, input.Name, 100).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.RefreshTokenCookie(pair.RefreshToken, handler.refreshTTL))
	respond.Created(writer, accessTokenResponse{AccessToken: pair.AccessToken})
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	validator := &validate.Validator{}
	err := validator.
		Required(user.FieldEmail, input.Email).
		Required(user.FieldPassword, input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.RefreshTokenCookie(pair.RefreshToken, handler.refreshTTL))
	respond.OK(writer, accessTokenResponse{AccessToken: pair.AccessToken})
}

// logout clears the refresh cookie. There is no server-side revocation
// list; the access token simply runs out its short TTL.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, sec.ExpiredRefreshTokenCookie())
	respond.NoContent(writer)
}

func (handler *Handler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	accessToken, err := handler.service.Refresh(request.Context(), sec.RefreshTokenFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accessTokenResponse{AccessToken: accessToken})
}
