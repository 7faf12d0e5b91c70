package schema

// BookChapterPageContentTable represents the 'book_chapter_page_contents' table
type BookChapterPageContentTable struct {
	Table         string
	ID            string
	BookID        string
	ChapterNumber string
	PageNumber    string
	Content       string
	CreatedAt     string
	UpdatedAt     string
	IsDeleted     string
}

// BookChapterPageContent is the schema definition for book_chapter_page_contents
var BookChapterPageContent = BookChapterPageContentTable{
	Table:         "book_chapter_page_contents",
	ID:            "id",
	BookID:        "book_id",
	ChapterNumber: "chapter_number",
	PageNumber:    "page_number",
	Content:       "content",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	IsDeleted:     "is_deleted",
}

func (t BookChapterPageContentTable) Columns() []string {
	return []string{t.ID, t.BookID, t.ChapterNumber, t.PageNumber, t.Content, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
