// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and the auth gate.
package sec

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal as seen by the rest of the system.
//
// It is a plain value deliberately decoupled from any persistence entity:
// token issuance takes an Identity, and the auth gate reconstructs one from
// the persisted user before threading it through the request context.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Roles  []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if Role(r) == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

// accessClaims is the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the display name and the comma-joined role list directly in
// the token, downstream code can render and authorize without an extra
// database query; the gate still re-reads the user once per request to
// reject deleted accounts.
type accessClaims struct {
	jwt.RegisteredClaims

	Name  string `json:"name,omitempty"`
	Roles string `json:"roles,omitempty"`
}

// TokenService handles generation and verification of JWT tokens using a
// symmetric HS256 key.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// NewTokenService creates a new TokenService around the shared signing secret.
func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration, logger *slog.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}, nil
}

// RefreshTTL exposes the refresh-token lifetime for cookie Max-Age wiring.
func (service *TokenService) RefreshTTL() time.Duration {
	return service.refreshTTL
}

// GenerateAccessToken creates a signed access token for the given identity.
//
// Claims: sub = email, name, roles (comma-joined), iat, exp = now + access TTL.
func (service *TokenService) GenerateAccessToken(identity Identity) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.accessTTL)),
		},
		Name:  identity.Name,
		Roles: strings.Join(identity.Roles, ","),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return signed, nil
}

// GenerateRefreshToken creates a signed refresh token carrying only the
// subject and timestamps.
//
// Roles are deliberately absent: the refresh flow must re-derive them from
// the persisted user so a role change takes effect on the next refresh.
func (service *TokenService) GenerateRefreshToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(service.refreshTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return signed, nil
}

// Validate verifies the token's signature and temporal claims.
//
// It never surfaces an error to the caller: any verification failure is
// logged and reported as false.
func (service *TokenService) Validate(tokenString string) bool {
	_, err := jwt.Parse(tokenString, service.keyFunc)
	if err != nil {
		service.logger.Warn("jwt_validation_failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Subject decodes the 'sub' claim WITHOUT verifying the signature.
//
// # Caller contract
//
// The returned subject is untrusted until the token has passed [Validate].
// The refresh flow and the auth gate both call Validate first; do not use
// this on raw input for anything security-relevant without doing the same.
func (service *TokenService) Subject(tokenString string) string {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		service.logger.Warn("jwt_decode_failed", slog.String("error", err.Error()))
		return ""
	}
	return claims.Subject
}

// IdentityFromToken decodes the identity claims WITHOUT verifying the
// signature. Same caller contract as [Subject].
func (service *TokenService) IdentityFromToken(tokenString string) Identity {
	claims := accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		service.logger.Warn("jwt_decode_failed", slog.String("error", err.Error()))
		return Identity{}
	}

	identity := Identity{
		Email: claims.Subject,
		Name:  claims.Name,
	}
	if claims.Roles != "" {
		identity.Roles = strings.Split(claims.Roles, ",")
	}
	return identity
}

// ExpiryOf decodes the 'exp' claim without verification. Returns the zero
// time on malformed input.
func (service *TokenService) ExpiryOf(tokenString string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// keyFunc pins the signing method to HMAC before releasing the secret.
func (service *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
	}
	return service.secret, nil
}
