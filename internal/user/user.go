// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user implements account profiles and administration.

The package owns the users table and its role assignments. The auth
package builds on its Repository for signup, login and identity
resolution; the profile endpoints and the admin user listing live here.
*/
package user

import "time"

// User represents a registered account. Password carries the bcrypt hash
// and never serializes.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Name       string    `json:"name"`
	AvatarPath string    `json:"avatarPath"`
	Roles      []string  `json:"roles"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	IsDeleted  bool      `json:"-"`
}

// ProfileCounts aggregates a user's live activity for the profile screen.
type ProfileCounts struct {
	ReviewCount   int64 `json:"reviewCount"`
	FavoriteCount int64 `json:"favoriteCount"`
	BookmarkCount int64 `json:"bookmarkCount"`
}

// # Field Identifiers

const (
	FieldEmail           = "email"
	FieldName            = "name"
	FieldAvatarPath      = "avatarPath"
	FieldPassword        = "password"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)
