package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table           string
	ID              string
	Title           string
	Description     string
	Authors         string
	Publisher       string
	PublicationDate string
	Price           string
	PageCount       string
	ISBN            string
	ImagePath       string
	ReviewCount     string
	AverageRating   string
	Popularity      string
	CreatedAt       string
	UpdatedAt       string
	IsDeleted       string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:           "books",
	ID:              "id",
	Title:           "title",
	Description:     "description",
	Authors:         "authors",
	Publisher:       "publisher",
	PublicationDate: "publication_date",
	Price:           "price",
	PageCount:       "page_count",
	ISBN:            "isbn",
	ImagePath:       "image_path",
	ReviewCount:     "review_count",
	AverageRating:   "average_rating",
	Popularity:      "popularity",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
	IsDeleted:       "is_deleted",
}

func (t BookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Authors, t.Publisher, t.PublicationDate,
		t.Price, t.PageCount, t.ISBN, t.ImagePath, t.ReviewCount, t.AverageRating,
		t.Popularity, t.CreatedAt, t.UpdatedAt, t.IsDeleted,
	}
}
