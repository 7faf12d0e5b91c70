// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"
	"time"

	"github.com/taibuivan/hondana/internal/platform/constants"
)

// # Refresh Token Transport
//
// The refresh token never travels in a response body or an Authorization
// header. It rides exclusively on an HTTP-only, Secure, cross-site cookie so
// browser JavaScript can never read it.

// RefreshTokenCookie builds the cookie carrying a freshly issued refresh token.
func RefreshTokenCookie(refreshToken string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    refreshToken,
		Path:     constants.RefreshTokenCookiePath,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(ttl.Seconds()),
	}
}

// ExpiredRefreshTokenCookie builds the cookie that clears the refresh token
// immediately (Max-Age=0 on the wire).
func ExpiredRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		// net/http serializes a negative MaxAge as Max-Age=0.
		MaxAge: -1,
	}
}

// RefreshTokenFromRequest extracts the refresh token from the request cookie.
// Returns an empty string when the cookie is absent.
func RefreshTokenFromRequest(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
