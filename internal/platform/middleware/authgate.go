// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/ctxutil"
	"github.com/taibuivan/hondana/internal/platform/respond"
	"github.com/taibuivan/hondana/internal/platform/sec"
)

// # Auth Gate

// TokenValidator defines the token operations the gate needs.
//
// # Why an interface?
//
// Defining TokenValidator here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenValidator interface {
	Validate(tokenString string) bool
	Subject(tokenString string) string
}

// IdentityResolver resolves a token subject (email) into a full identity.
// The auth domain provides the production implementation backed by the
// users table, so roles always reflect persisted state rather than
// whatever the token was minted with.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (*sec.Identity, error)
}

// fullyPublicPatterns lists routes reachable with any HTTP method and no token.
var fullyPublicPatterns = []string{
	"/login",
	"/signup",
	"/logout",
	"/refresh-token",
	"/health",
	"/ready",
}

// readPublicPatterns lists routes reachable without a token for GET requests only.
var readPublicPatterns = []string{
	"/genres/**",
	"/books/**",
}

// AuthGate enforces the route-level access policy for the whole API.
//
// # Flow
//  1. Match the request path against the public route tables; public
//     requests pass through untouched, with no token inspection at all.
//  2. Everything else requires 'Authorization: Bearer <token>'. Absent or
//     malformed headers abort with HTTP 401.
//  3. Validate the token signature and expiry, extract the subject, and
//     resolve it to a persisted user. Any failure along that path is an
//     expected authentication failure: HTTP 401.
//  4. Inject the resolved [*sec.Identity] into the request context.
//
// Unexpected internal failures (resolver errors that are not NotFound) are
// masked as a generic 500 carrying only the request id.
func AuthGate(validator TokenValidator, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Public Route Tables ────────────────────────────────────────
			if isPublicRoute(request.Method, request.URL.Path) {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Header Extraction ──────────────────────────────────────────
			token, ok := bearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			if !validator.Validate(token) {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			subject := validator.Subject(token)
			if subject == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Identity Resolution ────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), subject)
			if err != nil {
				if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}

				// Unexpected resolver failure: log the cause, mask the response.
				logger := ctxutil.GetLogger(request.Context())
				logger.ErrorContext(request.Context(), "auth_gate_resolver_failed",
					slog.String("error", err.Error()),
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				)
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests whose authenticated user lacks the required role.
//
// # Usage
//
// Must be registered in the router AFTER [AuthGate]. It implies the
// authentication check, so you don't need a separate guard.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			allowed := false
			for _, held := range identity.Roles {
				if sec.Role(held).AtLeast(role) {
					allowed = true
					break
				}
			}
			if !allowed {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Route Matching

// isPublicRoute reports whether the request may bypass authentication.
//
// Paths carrying '.' or '..' segments are never public: a traversal
// segment lets a raw path match a public pattern while the router
// dispatches the normalized path to a protected handler.
func isPublicRoute(method, path string) bool {
	if hasDotSegment(path) {
		return false
	}

	for _, pattern := range fullyPublicPatterns {
		if MatchPath(pattern, path) {
			return true
		}
	}

	if method == http.MethodGet {
		for _, pattern := range readPublicPatterns {
			if MatchPath(pattern, path) {
				return true
			}
		}
	}

	return false
}

// MatchPath matches a request path against an Ant-style pattern:
// '*' matches exactly one path segment, '**' matches any remaining segments
// (including none). Patterns and paths are compared segment by segment.
func MatchPath(pattern, path string) bool {
	patternSegments := splitPath(pattern)
	pathSegments := splitPath(path)

	for i, segment := range patternSegments {
		if segment == "**" {
			return true
		}
		if i >= len(pathSegments) {
			return false
		}
		if segment != "*" && segment != pathSegments[i] {
			return false
		}
	}

	return len(patternSegments) == len(pathSegments)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// hasDotSegment reports whether any path segment is '.' or '..'.
func hasDotSegment(path string) bool {
	for _, segment := range splitPath(path) {
		if segment == "." || segment == ".." {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from an 'Authorization: Bearer <token>' header.
func bearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
