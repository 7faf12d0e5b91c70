// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"

	"github.com/taibuivan/hondana/pkg/pagination"
)

// Repository abstracts account persistence. Roles are loaded with every
// user read so callers can build an authorization identity without a
// second round trip.
type Repository interface {
	// GetByID returns a live user with roles. apperr.NotFound otherwise.
	GetByID(context context.Context, id string) (*User, error)

	// GetByEmail returns a live user with roles. apperr.NotFound otherwise.
	GetByEmail(context context.Context, email string) (*User, error)

	// ExistsByEmail reports whether any account, deleted or not, holds the
	// email. Deleted accounts keep their address reserved.
	ExistsByEmail(context context.Context, email string) (bool, error)

	// Create persists a new user and its role assignments in one
	// transaction.
	Create(context context.Context, user *User) error

	// UpdateProfile writes the mutable profile fields (name, avatar path).
	UpdateProfile(context context.Context, user *User) error

	UpdateEmail(context context.Context, id, email string) error
	UpdatePassword(context context.Context, id, passwordHash string) error

	// ListPage pages over live accounts for administration.
	ListPage(context context.Context, plan pagination.Plan) (pagination.Page[*User], error)

	// SoftDelete marks the account deleted, which also locks it out at the
	// auth gate on the next identity resolution.
	SoftDelete(context context.Context, id string) error

	// ProfileCounts aggregates the user's live reviews, favorites and
	// bookmarks.
	ProfileCounts(context context.Context, userID string) (ProfileCounts, error)
}
