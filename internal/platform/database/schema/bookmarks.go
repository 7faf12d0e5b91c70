package schema

// BookmarkTable represents the 'bookmarks' table
type BookmarkTable struct {
	Table         string
	ID            string
	UserID        string
	PageContentID string
	Note          string
	CreatedAt     string
	UpdatedAt     string
	IsDeleted     string
}

// Bookmark is the schema definition for bookmarks
var Bookmark = BookmarkTable{
	Table:         "bookmarks",
	ID:            "id",
	UserID:        "user_id",
	PageContentID: "page_content_id",
	Note:          "note",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	IsDeleted:     "is_deleted",
}

func (t BookmarkTable) Columns() []string {
	return []string{t.ID, t.UserID, t.PageContentID, t.Note, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
