package schema

// FavoriteTable represents the 'favorites' table
type FavoriteTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	CreatedAt string
	UpdatedAt string
	IsDeleted string
}

// Favorite is the schema definition for favorites
var Favorite = FavoriteTable{
	Table:     "favorites",
	ID:        "id",
	UserID:    "user_id",
	BookID:    "book_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
	IsDeleted: "is_deleted",
}

func (t FavoriteTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
