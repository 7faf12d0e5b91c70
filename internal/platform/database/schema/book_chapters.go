package schema

// BookChapterTable represents the 'book_chapters' table (composite key book_id + chapter_number)
type BookChapterTable struct {
	Table         string
	BookID        string
	ChapterNumber string
	Title         string
	CreatedAt     string
	UpdatedAt     string
	IsDeleted     string
}

// BookChapter is the schema definition for book_chapters
var BookChapter = BookChapterTable{
	Table:         "book_chapters",
	BookID:        "book_id",
	ChapterNumber: "chapter_number",
	Title:         "title",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	IsDeleted:     "is_deleted",
}

func (t BookChapterTable) Columns() []string {
	return []string{t.BookID, t.ChapterNumber, t.Title, t.CreatedAt, t.UpdatedAt, t.IsDeleted}
}
