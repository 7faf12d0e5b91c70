// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/platform/constants"
	"github.com/taibuivan/hondana/internal/platform/sec"
)

func newTokenService(t *testing.T, accessTTL time.Duration) *sec.TokenService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service, err := sec.NewTokenService("test-secret-key-0123456789abcdef", constants.AuthIssuer, accessTTL, 24*time.Hour, logger)
	require.NoError(t, err)
	return service
}

/*
TestTokenRoundTrip verifies that an issued access token validates and that
its subject and role claims decode back to the issuing identity.
*/
func TestTokenRoundTrip(t *testing.T) {
	service := newTokenService(t, 15*time.Minute)

	identity := sec.Identity{Email: "a@x.com", Name: "Aki", Roles: []string{"ROLE_USER"}}
	token, err := service.GenerateAccessToken(identity)
	require.NoError(t, err)

	assert.True(t, service.Validate(token))
	assert.Equal(t, "a@x.com", service.Subject(token))

	decoded := service.IdentityFromToken(token)
	assert.Equal(t, "a@x.com", decoded.Email)
	assert.Equal(t, "Aki", decoded.Name)
	assert.Equal(t, []string{"ROLE_USER"}, decoded.Roles)
}

/*
TestTokenExpiry verifies that a token whose expiry is in the past fails
validation while its claims remain decodable.
*/
func TestTokenExpiry(t *testing.T) {
	service := newTokenService(t, -1*time.Minute)

	token, err := service.GenerateAccessToken(sec.Identity{Email: "a@x.com"})
	require.NoError(t, err)

	assert.False(t, service.Validate(token))

	// Subject is decode-only: it still reads even though validation failed.
	// Callers must Validate first when trust matters.
	assert.Equal(t, "a@x.com", service.Subject(token))
}

func TestValidate_RejectsGarbageAndForeignSignature(t *testing.T) {
	service := newTokenService(t, 15*time.Minute)

	assert.False(t, service.Validate("not-a-jwt"))
	assert.Empty(t, service.Subject("not-a-jwt"))

	other := newTokenServiceWithSecret(t, "a-completely-different-secret-key")
	foreign, err := other.GenerateAccessToken(sec.Identity{Email: "b@x.com"})
	require.NoError(t, err)

	assert.False(t, service.Validate(foreign))
}

func newTokenServiceWithSecret(t *testing.T, secret string) *sec.TokenService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service, err := sec.NewTokenService(secret, constants.AuthIssuer, 15*time.Minute, 24*time.Hour, logger)
	require.NoError(t, err)
	return service
}

func TestRefreshToken_CarriesNoRoles(t *testing.T) {
	service := newTokenService(t, 15*time.Minute)

	token, err := service.GenerateRefreshToken("a@x.com")
	require.NoError(t, err)

	assert.True(t, service.Validate(token))
	assert.Equal(t, "a@x.com", service.Subject(token))
	assert.Empty(t, service.IdentityFromToken(token).Roles, "refresh tokens must never embed roles")
}

func TestRefreshTokenCookies(t *testing.T) {
	cookie := sec.RefreshTokenCookie("tok", 24*time.Hour)
	assert.Equal(t, constants.RefreshTokenCookieName, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, 86400, cookie.MaxAge)

	expired := sec.ExpiredRefreshTokenCookie()
	assert.Empty(t, expired.Value)
	assert.Negative(t, expired.MaxAge)
}

func TestIdentity_Roles(t *testing.T) {
	admin := sec.Identity{Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}
	assert.True(t, admin.IsAdmin())

	member := sec.Identity{Roles: []string{"ROLE_USER"}}
	assert.False(t, member.IsAdmin())
	assert.True(t, member.HasRole(sec.RoleUser))
}
