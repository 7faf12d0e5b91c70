// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/auth"
	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/sec"
	"github.com/taibuivan/hondana/internal/user"
)

type fakeStore struct {
	users map[string]*user.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*user.User{}}
}

func (fake *fakeStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	account, ok := fake.users[email]
	if !ok || account.IsDeleted {
		return nil, apperr.NotFound("User")
	}
	return account, nil
}

func (fake *fakeStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := fake.users[email]
	return ok, nil
}

func (fake *fakeStore) Create(_ context.Context, created *user.User) error {
	fake.users[created.Email] = created
	return nil
}

func newService(t *testing.T, store *fakeStore) (*auth.Service, *sec.TokenService) {
	t.Helper()
	tokens, err := sec.NewTokenService("test-secret-test-secret-test-secret", "hondana.app",
		15*time.Minute, 24*time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return auth.NewService(store, tokens, slog.New(slog.NewTextHandler(io.Discard, nil))), tokens
}

func TestService_SignupAndLogin(t *testing.T) {
	store := newFakeStore()
	service, tokens := newService(t, store)

	pair, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "reader@hondana.app",
		Password: "hunter2-secret",
		Name:     "Reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, tokens.Validate(pair.AccessToken))

	account := store.users["reader@hondana.app"]
	require.NotNil(t, account)
	assert.NotEqual(t, "hunter2-secret", account.Password)
	assert.Equal(t, []string{string(sec.RoleUser)}, account.Roles)

	again, err := service.Login(context.Background(), "reader@hondana.app", "hunter2-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, again.AccessToken)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	service, _ := newService(t, store)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email: "reader@hondana.app", Password: "hunter2-secret", Name: "Reader",
	})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Email: "reader@hondana.app", Password: "other-secret", Name: "Copycat",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
}

func TestService_Login_IndistinguishableFailures(t *testing.T) {
	store := newFakeStore()
	service, _ := newService(t, store)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email: "reader@hondana.app", Password: "hunter2-secret", Name: "Reader",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), "nobody@hondana.app", "whatever")
	_, wrongErr := service.Login(context.Background(), "reader@hondana.app", "wrong-password")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	appError := apperr.As(unknownErr)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
}

func TestService_Refresh_RederivesRoles(t *testing.T) {
	store := newFakeStore()
	service, tokens := newService(t, store)

	pair, err := service.Signup(context.Background(), auth.SignupInput{
		Email: "reader@hondana.app", Password: "hunter2-secret", Name: "Reader",
	})
	require.NoError(t, err)

	// promote after the refresh token was issued
	store.users["reader@hondana.app"].Roles = []string{string(sec.RoleAdmin)}

	accessToken, err := service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	identity := tokens.IdentityFromToken(accessToken)
	assert.True(t, identity.IsAdmin())
}

func TestService_Refresh_RejectsGarbage(t *testing.T) {
	service, _ := newService(t, newFakeStore())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.Refresh(context.Background(), token)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
	}
}

func TestService_Refresh_DeletedAccount(t *testing.T) {
	store := newFakeStore()
	service, _ := newService(t, store)

	pair, err := service.Signup(context.Background(), auth.SignupInput{
		Email: "reader@hondana.app", Password: "hunter2-secret", Name: "Reader",
	})
	require.NoError(t, err)

	store.users["reader@hondana.app"].IsDeleted = true

	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
}

func TestService_ResolveIdentity(t *testing.T) {
	store := newFakeStore()
	service, _ := newService(t, store)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email: "reader@hondana.app", Password: "hunter2-secret", Name: "Reader",
	})
	require.NoError(t, err)

	identity, err := service.ResolveIdentity(context.Background(), "reader@hondana.app")
	require.NoError(t, err)
	assert.Equal(t, "reader@hondana.app", identity.Email)
	assert.Equal(t, "Reader", identity.Name)
	assert.False(t, identity.IsAdmin())
}
