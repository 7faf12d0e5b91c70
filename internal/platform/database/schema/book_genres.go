package schema

// BookGenreTable represents the 'book_genres' join table
type BookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// BookGenre is the schema definition for book_genres
var BookGenre = BookGenreTable{
	Table:   "book_genres",
	BookID:  "book_id",
	GenreID: "genre_id",
}

func (t BookGenreTable) Columns() []string {
	return []string{t.BookID, t.GenreID}
}
