// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements registration, login and token refresh.

Access tokens travel in the Authorization header; refresh tokens ride
exclusively on an HTTP-only cookie. The refresh flow re-derives roles
from the persisted account rather than trusting the token, so a role or
deletion change takes effect on the next refresh.
*/
package auth

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/sec"
	"github.com/taibuivan/hondana/internal/user"
	"github.com/taibuivan/hondana/pkg/uuidv7"
)

// UserStore is the slice of account persistence the auth flows need.
// *user.PostgresRepository satisfies it.
type UserStore interface {
	GetByEmail(context context.Context, email string) (*user.User, error)
	ExistsByEmail(context context.Context, email string) (bool, error)
	Create(context context.Context, user *user.User) error
}

// TokenIssuer is the slice of the token service the auth flows need.
type TokenIssuer interface {
	GenerateAccessToken(identity sec.Identity) (string, error)
	GenerateRefreshToken(email string) (string, error)
	Validate(tokenString string) bool
	Subject(tokenString string) string
}

// Service implements the authentication flows.
type Service struct {
	store  UserStore
	tokens TokenIssuer
	logger *slog.Logger
}

func NewService(store UserStore, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, logger: logger}
}

// SignupInput carries a registration request.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenPair is the outcome of a successful authentication: the access
// token for the response body and the refresh token for the cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

/*
Signup registers a new account and signs it in.

Parameters:
  - context: request-scoped context.
  - input: validated registration fields.

Returns:
  - TokenPair: freshly issued tokens.
  - error: apperr.Conflict when the email is already registered.
*/
func (service *Service) Signup(context context.Context, input SignupInput) (TokenPair, error) {
	taken, err := service.store.ExistsByEmail(context, input.Email)
	if err != nil {
		return TokenPair{}, err
	}
	if taken {
		return TokenPair{}, apperr.Conflict("Email address is already in use")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}

	account := &user.User{
		ID:       uuidv7.Must(),
		Email:    input.Email,
		Password: hash,
		Name:     input.Name,
		Roles:    []string{string(sec.RoleUser)},
	}
	if err := service.store.Create(context, account); err != nil {
		return TokenPair{}, err
	}

	service.logger.Info("account registered", "user_id", account.ID)
	return service.issueTokens(*account)
}

/*
Login authenticates an email/password pair.

An unknown address and a wrong password produce the same response, so
the endpoint cannot be used to probe which emails are registered.

Parameters:
  - context: request-scoped context.
  - email: submitted address.
  - password: submitted plain-text password.

Returns:
  - TokenPair: freshly issued tokens.
  - error: apperr.Unauthorized on any credential failure.
*/
func (service *Service) Login(context context.Context, email, password string) (TokenPair, error) {
	account, err := service.store.GetByEmail(context, email)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
			return TokenPair{}, apperr.Unauthorized("Invalid email or password")
		}
		return TokenPair{}, err
	}
	if !sec.CheckPasswordHash(password, account.Password) {
		return TokenPair{}, apperr.Unauthorized("Invalid email or password")
	}

	return service.issueTokens(*account)
}

/*
Refresh exchanges a valid refresh token for a new access token.

The subject's roles come from the persisted account, never from the
presented token.

Parameters:
  - context: request-scoped context.
  - refreshToken: token extracted from the cookie.

Returns:
  - string: a new access token.
  - error: apperr.Unauthorized when the token or the account is invalid.
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {
	if refreshToken == "" || !service.tokens.Validate(refreshToken) {
		return "", apperr.Unauthorized("Invalid refresh token")
	}

	account, err := service.store.GetByEmail(context, service.tokens.Subject(refreshToken))
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
			return "", apperr.Unauthorized("Invalid refresh token")
		}
		return "", err
	}

	return service.tokens.GenerateAccessToken(identityOf(*account))
}

// ResolveIdentity loads the live account behind a token subject for the
// auth gate. Satisfies middleware.IdentityResolver.
func (service *Service) ResolveIdentity(context context.Context, email string) (*sec.Identity, error) {
	account, err := service.store.GetByEmail(context, email)
	if err != nil {
		return nil, err
	}
	identity := identityOf(*account)
	return &identity, nil
}

func (service *Service) issueTokens(account user.User) (TokenPair, error) {
	accessToken, err := service.tokens.GenerateAccessToken(identityOf(account))
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	refreshToken, err := service.tokens.GenerateRefreshToken(account.Email)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func identityOf(account user.User) sec.Identity {
	return sec.Identity{
		UserID: account.ID,
		Email:  account.Email,
		Name:   account.Name,
		Roles:  account.Roles,
	}
}
