package schema

// RoleTable represents the 'roles' table
type RoleTable struct {
	Table       string
	ID          string
	Name        string
	Description string
}

// Role is the schema definition for roles
var Role = RoleTable{
	Table:       "roles",
	ID:          "id",
	Name:        "name",
	Description: "description",
}

func (t RoleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description}
}
