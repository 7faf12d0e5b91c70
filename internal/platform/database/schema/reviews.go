package schema

// ReviewTable represents the 'reviews' table
type ReviewTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	Comment   string
	Rating    string
	CreatedAt string
	UpdatedAt string
	IsDeleted string
}

// Review is the schema definition for reviews
var Review = ReviewTable{
	Table:     "reviews",
	ID:        "id",
	UserID:    "user_id",
	BookID:    "book_id",
	Comment:   "comment",
	Rating:    "rating",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
	IsDeleted: "is_deleted",
}

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.Comment, t.Rating, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
