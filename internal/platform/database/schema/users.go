package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table      string
	ID         string
	Email      string
	Password   string
	Name       string
	AvatarPath string
	CreatedAt  string
	UpdatedAt  string
	IsDeleted  string
}

// User is the schema definition for users
var User = UserTable{
	Table:      "users",
	ID:         "id",
	Email:      "email",
	Password:   "password",
	Name:       "name",
	AvatarPath: "avatar_path",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
	IsDeleted:  "is_deleted",
}

func (t UserTable) Columns() []string {
	return []string{t.ID, t.Email, t.Password, t.Name, t.AvatarPath, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
