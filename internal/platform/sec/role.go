// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// Roles form a fixed enum rather than a mutable table: the authorization
// checks only ever distinguish regular members from administrators.
type Role string

const (
	// Default role for standard registered users
	RoleUser Role = "ROLE_USER"

	// Unrestricted system access
	RoleAdmin Role = "ROLE_ADMIN"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
