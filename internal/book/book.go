// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the catalogue's discovery and reading surface.

It covers paged listing, title search, genre discovery, book details, the
table of contents, and per-page reading content. All list endpoints follow
the two-query strategy: the first query pages over bare book rows, the
second hydrates genre relations for exactly the IDs on the page.
*/
package book

import "time"

// Book represents a catalogue entry.
//
// GenreIDs is populated for list responses; Genres carries the full genre
// objects and is only hydrated for the details view.
type Book struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	GenreIDs        []int64    `json:"genreIds,omitempty"`
	Genres          []GenreRef `json:"genres,omitempty"`
	Authors         []string   `json:"authors"`
	Publisher       string     `json:"publisher,omitempty"`
	PublicationDate time.Time  `json:"publicationDate"`
	Price           int64      `json:"price,omitempty"`
	PageCount       int64      `json:"pageCount,omitempty"`
	ISBN            string     `json:"isbn,omitempty"`
	ImagePath       string     `json:"imagePath"`
	ReviewCount     int64      `json:"reviewCount"`
	AverageRating   float64    `json:"averageRating"`
	Popularity      float64    `json:"popularity"`
}

// GenreRef is the embedded genre shape on a book details response.
type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Chapter is one table-of-contents entry.
type Chapter struct {
	ChapterNumber int64   `json:"chapterNumber"`
	ChapterTitle  string  `json:"chapterTitle"`
	PageNumbers   []int64 `json:"pageNumbers"`
}

// TableOfContents is the full chapter listing for a book.
type TableOfContents struct {
	BookID   string    `json:"bookId"`
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// PageContent is a single readable page within a chapter.
type PageContent struct {
	BookID              string `json:"bookId"`
	ChapterNumber       int64  `json:"chapterNumber"`
	ChapterTitle        string `json:"chapterTitle"`
	PageNumber          int64  `json:"pageNumber"`
	TotalPagesInChapter int64  `json:"totalPagesInChapter"`
	Content             string `json:"content"`
}

// # Discovery Conditions

// Condition selects how multiple genre IDs combine in discovery queries.
type Condition string

const (
	// ConditionSingle restricts the search to the first supplied genre.
	ConditionSingle Condition = "SINGLE"
	// ConditionAnd matches books carrying every supplied genre.
	ConditionAnd Condition = "AND"
	// ConditionOr matches books carrying any of the supplied genres.
	ConditionOr Condition = "OR"
)

// Valid reports whether the condition is one of the supported values.
func (c Condition) Valid() bool {
	return c == ConditionSingle || c == ConditionAnd || c == ConditionOr
}
