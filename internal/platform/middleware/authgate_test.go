// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/ctxutil"
	"github.com/taibuivan/hondana/internal/platform/middleware"
	"github.com/taibuivan/hondana/internal/platform/sec"
)

// stubValidator accepts exactly one token string.
type stubValidator struct {
	valid   string
	subject string
}

func (s *stubValidator) Validate(token string) bool { return token == s.valid }

func (s *stubValidator) Subject(token string) string {
	if token == s.valid {
		return s.subject
	}
	return ""
}

// stubResolver knows a single user by email.
type stubResolver struct {
	identity *sec.Identity
	err      error
}

func (s *stubResolver) ResolveIdentity(_ context.Context, email string) (*sec.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.identity != nil && s.identity.Email == email {
		return s.identity, nil
	}
	return nil, apperr.NotFound("User")
}

func newGate(t *testing.T, resolver *stubResolver) http.Handler {
	t.Helper()

	validator := &stubValidator{valid: "good-token", subject: "reader@example.com"}
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	return middleware.AuthGate(validator, resolver)(inner)
}

/*
TestAuthGate_AccessMatrix verifies which routes require a token and which
pass through anonymously, per method.
*/
func TestAuthGate_AccessMatrix(t *testing.T) {
	resolver := &stubResolver{identity: &sec.Identity{
		UserID: "user-1",
		Email:  "reader@example.com",
		Roles:  []string{"ROLE_USER"},
	}}
	gate := newGate(t, resolver)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"login_is_public", http.MethodPost, "/login", "", http.StatusOK},
		{"signup_is_public", http.MethodPost, "/signup", "", http.StatusOK},
		{"refresh_is_public", http.MethodPost, "/refresh-token", "", http.StatusOK},
		{"health_is_public", http.MethodGet, "/health", "", http.StatusOK},
		{"book_list_get_is_public", http.MethodGet, "/books", "", http.StatusOK},
		{"book_details_get_is_public", http.MethodGet, "/books/42", "", http.StatusOK},
		{"book_reviews_get_is_public", http.MethodGet, "/books/42/reviews", "", http.StatusOK},
		{"genre_get_is_public", http.MethodGet, "/genres/9", "", http.StatusOK},
		{"book_post_needs_token", http.MethodPost, "/books", "", http.StatusUnauthorized},
		{"genre_delete_needs_token", http.MethodDelete, "/genres/9", "", http.StatusUnauthorized},
		{"content_get_needs_token", http.MethodGet, "/content/books/42/chapters/1/pages/3", "", http.StatusUnauthorized},
		{"me_needs_token", http.MethodGet, "/me/profile", "", http.StatusUnauthorized},
		{"review_post_needs_token", http.MethodPost, "/reviews", "", http.StatusUnauthorized},
		{"valid_token_passes", http.MethodPost, "/reviews", "good-token", http.StatusOK},
		{"bad_token_rejected", http.MethodPost, "/reviews", "forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}

			recorder := httptest.NewRecorder()
			gate.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestAuthGate_MalformedHeader covers Authorization headers that do not carry
a usable bearer token.
*/
func TestAuthGate_MalformedHeader(t *testing.T) {
	resolver := &stubResolver{}
	gate := newGate(t, resolver)

	headers := []string{"Basic dXNlcjpwYXNz", "Bearer", "Bearer ", "good-token"}

	for _, header := range headers {
		request := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
		request.Header.Set("Authorization", header)

		recorder := httptest.NewRecorder()
		gate.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

/*
TestAuthGate_TraversalSegmentsNeverPublic ensures paths with '.' or '..'
segments cannot ride the public tables. A raw '/books/../content/...' path
would match the public GET pattern while the router dispatches the
normalized '/content/...' path to a protected handler.
*/
func TestAuthGate_TraversalSegmentsNeverPublic(t *testing.T) {
	resolver := &stubResolver{}
	gate := newGate(t, resolver)

	paths := []string{
		"/books/../content/books/42/chapters/1/pages/3",
		"/books/./42",
		"/genres/..",
		"/health/../me/profile",
	}

	for _, path := range paths {
		request := httptest.NewRequest(http.MethodGet, path, nil)

		recorder := httptest.NewRecorder()
		gate.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "path %q", path)
	}
}

/*
TestAuthGate_UnknownSubject ensures a valid token whose subject no longer
exists is treated as an authentication failure, not a server error.
*/
func TestAuthGate_UnknownSubject(t *testing.T) {
	resolver := &stubResolver{identity: &sec.Identity{Email: "someone-else@example.com"}}
	gate := newGate(t, resolver)

	request := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder := httptest.NewRecorder()
	gate.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthGate_IdentityInjected checks that downstream handlers can read the
resolved identity from the request context.
*/
func TestAuthGate_IdentityInjected(t *testing.T) {
	resolver := &stubResolver{identity: &sec.Identity{
		UserID: "user-1",
		Email:  "reader@example.com",
		Roles:  []string{"ROLE_ADMIN"},
	}}

	validator := &stubValidator{valid: "good-token", subject: "reader@example.com"}
	var seen *sec.Identity
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
	gate := middleware.AuthGate(validator, resolver)(inner)

	request := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder := httptest.NewRecorder()
	gate.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
	assert.True(t, seen.IsAdmin())
}

/*
TestRequireRole covers the admin guard behind the gate.
*/
func TestRequireRole(t *testing.T) {
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	guarded := middleware.RequireRole(sec.RoleAdmin)(inner)

	t.Run("anonymous_gets_401", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		recorder := httptest.NewRecorder()
		guarded.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("plain_user_gets_403", func(t *testing.T) {
		identity := &sec.Identity{UserID: "user-1", Roles: []string{"ROLE_USER"}}
		request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), identity))

		recorder := httptest.NewRecorder()
		guarded.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin_passes", func(t *testing.T) {
		identity := &sec.Identity{UserID: "admin-1", Roles: []string{"ROLE_ADMIN"}}
		request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), identity))

		recorder := httptest.NewRecorder()
		guarded.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestMatchPath exercises the Ant-style pattern matcher in isolation.
*/
func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/login", "/login", true},
		{"/login", "/login/extra", false},
		{"/books/**", "/books", true},
		{"/books/**", "/books/42", true},
		{"/books/**", "/books/42/reviews", true},
		{"/books/**", "/content/books/42", false},
		{"/books/*/toc", "/books/42/toc", true},
		{"/books/*/toc", "/books/42/extra/toc", false},
		{"/genres/**", "/genres", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_vs_"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.MatchPath(tt.pattern, tt.path))
		})
	}
}
