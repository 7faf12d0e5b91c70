package schema

// UserRoleTable represents the 'user_roles' join table
type UserRoleTable struct {
	Table  string
	UserID string
	RoleID string
}

// UserRole is the schema definition for user_roles
var UserRole = UserRoleTable{
	Table:  "user_roles",
	UserID: "user_id",
	RoleID: "role_id",
}

func (t UserRoleTable) Columns() []string {
	return []string{t.UserID, t.RoleID}
}
