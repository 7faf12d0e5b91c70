// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/sec"
	"github.com/taibuivan/hondana/internal/user"
	"github.com/taibuivan/hondana/pkg/pagination"
)

type fakeRepository struct {
	users  map[string]*user.User
	counts map[string]user.ProfileCounts
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:  map[string]*user.User{},
		counts: map[string]user.ProfileCounts{},
	}
}

func (fake *fakeRepository) add(t *testing.T, id, email, password string) *user.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	account := &user.User{
		ID:       id,
		Email:    email,
		Password: hash,
		Name:     "Account " + id,
		Roles:    []string{string(sec.RoleUser)},
	}
	fake.users[id] = account
	return account
}

func (fake *fakeRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	account, ok := fake.users[id]
	if !ok || account.IsDeleted {
		return nil, apperr.NotFound("User")
	}
	return account, nil
}

func (fake *fakeRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, account := range fake.users {
		if account.Email == email && !account.IsDeleted {
			return account, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (fake *fakeRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, account := range fake.users {
		if account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (fake *fakeRepository) Create(_ context.Context, created *user.User) error {
	fake.users[created.ID] = created
	return nil
}

func (fake *fakeRepository) UpdateProfile(_ context.Context, updated *user.User) error {
	fake.users[updated.ID] = updated
	return nil
}

func (fake *fakeRepository) UpdateEmail(_ context.Context, id, email string) error {
	fake.users[id].Email = email
	return nil
}

func (fake *fakeRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	fake.users[id].Password = passwordHash
	return nil
}

func (fake *fakeRepository) ListPage(_ context.Context, plan pagination.Plan) (pagination.Page[*user.User], error) {
	items := []*user.User{}
	for _, account := range fake.users {
		if !account.IsDeleted {
			items = append(items, account)
		}
	}
	return pagination.Page[*user.User]{Items: items, TotalItems: int64(len(items)), Plan: plan}, nil
}

func (fake *fakeRepository) SoftDelete(_ context.Context, id string) error {
	account, ok := fake.users[id]
	if !ok || account.IsDeleted {
		return apperr.NotFound("User")
	}
	account.IsDeleted = true
	return nil
}

func (fake *fakeRepository) ProfileCounts(_ context.Context, userID string) (user.ProfileCounts, error) {
	return fake.counts[userID], nil
}

func newService(repository *fakeRepository) *user.Service {
	return user.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_ChangeEmail(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "old@hondana.app", "hunter2-secret")
	service := newService(repository)

	updated, err := service.ChangeEmail(context.Background(), "u1", user.ChangeEmailInput{
		Email:           "new@hondana.app",
		CurrentPassword: "hunter2-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@hondana.app", updated.Email)
}

func TestService_ChangeEmail_WrongPassword(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "old@hondana.app", "hunter2-secret")
	service := newService(repository)

	_, err := service.ChangeEmail(context.Background(), "u1", user.ChangeEmailInput{
		Email:           "new@hondana.app",
		CurrentPassword: "wrong-password",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
	assert.Equal(t, "old@hondana.app", repository.users["u1"].Email)
}

func TestService_ChangeEmail_TakenAddress(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "first@hondana.app", "hunter2-secret")
	repository.add(t, "u2", "second@hondana.app", "other-secret")
	service := newService(repository)

	_, err := service.ChangeEmail(context.Background(), "u1", user.ChangeEmailInput{
		Email:           "second@hondana.app",
		CurrentPassword: "hunter2-secret",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
}

func TestService_ChangeEmail_DeletedAccountKeepsAddress(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "first@hondana.app", "hunter2-secret")
	gone := repository.add(t, "u2", "gone@hondana.app", "other-secret")
	gone.IsDeleted = true
	service := newService(repository)

	_, err := service.ChangeEmail(context.Background(), "u1", user.ChangeEmailInput{
		Email:           "gone@hondana.app",
		CurrentPassword: "hunter2-secret",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
}

func TestService_ChangePassword(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "reader@hondana.app", "hunter2-secret")
	service := newService(repository)

	err := service.ChangePassword(context.Background(), "u1", user.ChangePasswordInput{
		CurrentPassword: "hunter2-secret",
		NewPassword:     "rotated-secret",
	})
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("rotated-secret", repository.users["u1"].Password))
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "reader@hondana.app", "hunter2-secret")
	service := newService(repository)

	err := service.ChangePassword(context.Background(), "u1", user.ChangePasswordInput{
		CurrentPassword: "wrong-password",
		NewPassword:     "rotated-secret",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
}

func TestService_UpdateProfile(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "reader@hondana.app", "hunter2-secret")
	service := newService(repository)

	updated, err := service.UpdateProfile(context.Background(), "u1", user.UpdateProfileInput{
		Name:       "New Name",
		AvatarPath: "/avatars/u1.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "/avatars/u1.png", updated.AvatarPath)
}

func TestService_DeleteUser(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "reader@hondana.app", "hunter2-secret")
	service := newService(repository)

	require.NoError(t, service.DeleteUser(context.Background(), "u1"))

	_, err := service.GetUser(context.Background(), "u1")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestService_GetProfileCounts(t *testing.T) {
	repository := newFakeRepository()
	repository.add(t, "u1", "reader@hondana.app", "hunter2-secret")
	repository.counts["u1"] = user.ProfileCounts{ReviewCount: 3, FavoriteCount: 7, BookmarkCount: 2}
	service := newService(repository)

	counts, err := service.GetProfileCounts(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.ReviewCount)
	assert.Equal(t, int64(7), counts.FavoriteCount)
	assert.Equal(t, int64(2), counts.BookmarkCount)
}
