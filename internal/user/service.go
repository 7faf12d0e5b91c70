// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/sec"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// SortableColumns whitelists the admin user-listing sort fields.
var SortableColumns = pagination.SortColumns{
	"email":     "email",
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// DefaultSort orders accounts by signup recency.
const DefaultSort = "createdAt.desc"

// Service implements profile and account-administration logic.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	Name       string `json:"name"`
	AvatarPath string `json:"avatarPath"`
}

// ChangeEmailInput carries an email change request. The current password
// reconfirms possession of the account.
type ChangeEmailInput struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
}

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GetProfile returns the user's own profile.
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	return service.repository.GetByID(context, userID)
}

// GetProfileCounts aggregates the user's live activity.
func (service *Service) GetProfileCounts(context context.Context, userID string) (ProfileCounts, error) {
	return service.repository.ProfileCounts(context, userID)
}

// UpdateProfile writes the user's display name and avatar path.
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	existing, err := service.repository.GetByID(context, userID)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.AvatarPath = input.AvatarPath
	if err := service.repository.UpdateProfile(context, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

/*
ChangeEmail moves the account to a new email address.

The current password is verified first, and the address must not be held
by any other account, deleted ones included.

Parameters:
  - context: request-scoped context.
  - userID: the authenticated caller.
  - input: validated change request.

Returns:
  - *User: the updated profile.
  - error: apperr.Unauthorized on a wrong password, apperr.Conflict when
    the address is taken.
*/
func (service *Service) ChangeEmail(context context.Context, userID string, input ChangeEmailInput) (*User, error) {
	existing, err := service.repository.GetByID(context, userID)
	if err != nil {
		return nil, err
	}
	if !sec.CheckPasswordHash(input.CurrentPassword, existing.Password) {
		return nil, apperr.Unauthorized("Current password is incorrect")
	}
	if existing.Email == input.Email {
		return existing, nil
	}

	taken, err := service.repository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email address is already in use")
	}

	if err := service.repository.UpdateEmail(context, userID, input.Email); err != nil {
		return nil, err
	}
	existing.Email = input.Email
	return existing, nil
}

// ChangePassword rotates the account password after verifying the
// current one.
func (service *Service) ChangePassword(context context.Context, userID string, input ChangePasswordInput) error {
	existing, err := service.repository.GetByID(context, userID)
	if err != nil {
		return err
	}
	if !sec.CheckPasswordHash(input.CurrentPassword, existing.Password) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	return service.repository.UpdatePassword(context, userID, hash)
}

// ListUsers pages over live accounts for administration.
func (service *Service) ListUsers(context context.Context, plan pagination.Plan) (pagination.Page[*User], error) {
	return service.repository.ListPage(context, plan)
}

// GetUser returns one account for administration.
func (service *Service) GetUser(context context.Context, id string) (*User, error) {
	return service.repository.GetByID(context, id)
}

// DeleteUser soft-deletes an account. The row survives so the email stays
// reserved and authored reviews keep their attribution.
func (service *Service) DeleteUser(context context.Context, id string) error {
	if _, err := service.repository.GetByID(context, id); err != nil {
		return err
	}
	return service.repository.SoftDelete(context, id)
}
