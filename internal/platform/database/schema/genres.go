package schema

// GenreTable represents the 'genres' table
type GenreTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
	UpdatedAt   string
	IsDeleted   string
}

// Genre is the schema definition for genres
var Genre = GenreTable{
	Table:       "genres",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
	IsDeleted:   "is_deleted",
}

func (t GenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
