// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book: PostgreSQL data access for the catalogue.

The listing queries use COUNT(*) OVER() to fold the total count into the
page query, and json_agg sub-selects to hydrate genre relations without an
N+1 fan-out. The ORDER BY clause is built exclusively from the whitelisted
sort columns resolved by pkg/pagination, never from raw client input.
*/
package book

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
	"github.com/taibuivan/hondana/pkg/pagination"
	"github.com/taibuivan/hondana/pkg/slice"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed book store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// bookColumns is the shared projection for bare book rows.
func bookColumns(alias string) string {
	cols := []string{
		schema.Book.ID, schema.Book.Title, schema.Book.Description, schema.Book.Authors,
		schema.Book.Publisher, schema.Book.PublicationDate, schema.Book.Price, schema.Book.PageCount,
		schema.Book.ISBN, schema.Book.ImagePath, schema.Book.ReviewCount, schema.Book.AverageRating,
		schema.Book.Popularity,
	}
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

// scanBook reads the shared projection into a [Book].
func scanBook(row interface{ Scan(...any) error }, extra ...any) (*Book, error) {
	book := &Book{}
	var authors string

	targets := []any{
		&book.ID, &book.Title, &book.Description, &authors,
		&book.Publisher, &book.PublicationDate, &book.Price, &book.PageCount,
		&book.ISBN, &book.ImagePath, &book.ReviewCount, &book.AverageRating,
		&book.Popularity,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	book.Authors = splitAuthors(authors)
	return book, nil
}

// splitAuthors expands the comma-separated authors column.
func splitAuthors(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return slice.Map(strings.Split(raw, ","), strings.TrimSpace)
}

/*
ListPage returns one sorted, counted page of bare book rows.

Description: First half of the two-query strategy. The window function
COUNT(*) OVER() yields the total matching count without a second query;
relations are deliberately not loaded here.

Parameters:
  - context: context.Context
  - filter: Filter (keyword or genre constraints)
  - plan: pagination.Plan (resolved page, size, sort)

Returns:
  - pagination.Page[*Book]: Bare books plus total count
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListPage(context context.Context, filter Filter, plan pagination.Plan) (pagination.Page[*Book], error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count FROM %s b WHERE b.%s = false`,
		bookColumns("b"), schema.Book.Table, schema.Book.IsDeleted,
	))

	// Title search
	if filter.Keyword != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s ILIKE $%d", schema.Book.Title, argID))
		args = append(args, "%"+filter.Keyword+"%")
		argID++
	}

	// Genre discovery
	if len(filter.GenreIDs) > 0 {
		if filter.MatchAll {
			// Books carrying EVERY requested genre.
			queryBuilder.WriteString(fmt.Sprintf(` AND b.%s IN (
				SELECT bg.%s FROM %s bg
				WHERE bg.%s = ANY($%d)
				GROUP BY bg.%s
				HAVING COUNT(DISTINCT bg.%s) = $%d
			)`,
				schema.Book.ID,
				schema.BookGenre.BookID, schema.BookGenre.Table,
				schema.BookGenre.GenreID, argID,
				schema.BookGenre.BookID,
				schema.BookGenre.GenreID, argID+1,
			))
			args = append(args, filter.GenreIDs, len(filter.GenreIDs))
			argID += 2
		} else {
			// Books carrying ANY requested genre.
			queryBuilder.WriteString(fmt.Sprintf(` AND b.%s IN (
				SELECT bg.%s FROM %s bg WHERE bg.%s = ANY($%d)
			)`,
				schema.Book.ID,
				schema.BookGenre.BookID, schema.BookGenre.Table,
				schema.BookGenre.GenreID, argID,
			))
			args = append(args, filter.GenreIDs)
			argID++
		}
	}

	// Whitelisted sort plus deterministic ID tiebreak.
	queryBuilder.WriteString(" ORDER BY " + SortableColumns.OrderBy(plan))
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d LIMIT $%d", argID, argID+1))
	args = append(args, plan.Offset(), plan.Limit())

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return pagination.Page[*Book]{}, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0, plan.Limit())
	var total int64

	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return pagination.Page[*Book]{}, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return pagination.Page[*Book]{}, dberr.Wrap(err, "list_books")
	}

	return pagination.Page[*Book]{Items: books, TotalItems: total, Plan: plan}, nil
}

/*
FindWithGenres fetches the given books with genre IDs hydrated.

Description: Second half of the two-query strategy. The genre relation is
aggregated into a JSON array per book, so the whole hydration costs one
round-trip regardless of page size.
*/
func (repository *PostgresRepository) FindWithGenres(context context.Context, ids []string) ([]*Book, error) {
	if len(ids) == 0 {
		return []*Book{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s,
			COALESCE((
				SELECT json_agg(bg.%s ORDER BY bg.%s)
				FROM %s bg
				WHERE bg.%s = b.%s
			), '[]') AS genre_ids
		FROM %s b
		WHERE b.%s = ANY($1)
	`,
		bookColumns("b"),
		schema.BookGenre.GenreID, schema.BookGenre.GenreID,
		schema.BookGenre.Table,
		schema.BookGenre.BookID, schema.Book.ID,
		schema.Book.Table,
		schema.Book.ID,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_books_with_genres")
	}
	defer rows.Close()

	books := make([]*Book, 0, len(ids))
	for rows.Next() {
		var genreIDsJSON []byte

		book, err := scanBook(rows, &genreIDsJSON)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book_with_genres")
		}

		if err := json.Unmarshal(genreIDsJSON, &book.GenreIDs); err != nil {
			return nil, dberr.Wrap(err, "decode_genre_ids")
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// GetByID returns one active book with full genre objects hydrated.
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			COALESCE((
				SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s) ORDER BY g.%s)
				FROM %s g
				JOIN %s bg ON g.%s = bg.%s
				WHERE bg.%s = b.%s AND g.%s = false
			), '[]') AS genres
		FROM %s b
		WHERE b.%s = $1 AND b.%s = false
	`,
		bookColumns("b"),
		schema.Genre.ID, schema.Genre.Name, schema.Genre.ID,
		schema.Genre.Table,
		schema.BookGenre.Table, schema.Genre.ID, schema.BookGenre.GenreID,
		schema.BookGenre.BookID, schema.Book.ID, schema.Genre.IsDeleted,
		schema.Book.Table,
		schema.Book.ID, schema.Book.IsDeleted,
	)

	var genresJSON []byte
	book, err := scanBook(repository.pool.QueryRow(context, query, id), &genresJSON)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_by_id")
	}

	if err := json.Unmarshal(genresJSON, &book.Genres); err != nil {
		return nil, dberr.Wrap(err, "decode_book_genres")
	}

	return book, nil
}

// ListChapters returns a book's active chapters with their page numbers.
func (repository *PostgresRepository) ListChapters(context context.Context, bookID string) ([]Chapter, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s,
			COALESCE((
				SELECT json_agg(p.%s ORDER BY p.%s)
				FROM %s p
				WHERE p.%s = c.%s AND p.%s = c.%s AND p.%s = false
			), '[]') AS page_numbers
		FROM %s c
		WHERE c.%s = $1 AND c.%s = false
		ORDER BY c.%s ASC
	`,
		schema.BookChapter.ChapterNumber, schema.BookChapter.Title,
		schema.BookChapterPageContent.PageNumber, schema.BookChapterPageContent.PageNumber,
		schema.BookChapterPageContent.Table,
		schema.BookChapterPageContent.BookID, schema.BookChapter.BookID,
		schema.BookChapterPageContent.ChapterNumber, schema.BookChapter.ChapterNumber,
		schema.BookChapterPageContent.IsDeleted,
		schema.BookChapter.Table,
		schema.BookChapter.BookID, schema.BookChapter.IsDeleted,
		schema.BookChapter.ChapterNumber,
	)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := make([]Chapter, 0)
	for rows.Next() {
		var chapter Chapter
		var pagesJSON []byte

		if err := rows.Scan(&chapter.ChapterNumber, &chapter.ChapterTitle, &pagesJSON); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}

		if err := json.Unmarshal(pagesJSON, &chapter.PageNumbers); err != nil {
			return nil, dberr.Wrap(err, "decode_page_numbers")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

// GetPageContent returns one readable page joined with its chapter title
// and the chapter's total active page count.
func (repository *PostgresRepository) GetPageContent(context context.Context, bookID string, chapterNumber, pageNumber int64) (*PageContent, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, c.%s,
			(SELECT COUNT(*) FROM %s p2
			 WHERE p2.%s = p.%s AND p2.%s = p.%s AND p2.%s = false) AS total_pages
		FROM %s p
		JOIN %s c ON c.%s = p.%s AND c.%s = p.%s
		WHERE p.%s = $1 AND p.%s = $2 AND p.%s = $3 AND p.%s = false
	`,
		schema.BookChapterPageContent.Content, schema.BookChapter.Title,
		schema.BookChapterPageContent.Table,
		schema.BookChapterPageContent.BookID, schema.BookChapterPageContent.BookID,
		schema.BookChapterPageContent.ChapterNumber, schema.BookChapterPageContent.ChapterNumber,
		schema.BookChapterPageContent.IsDeleted,
		schema.BookChapterPageContent.Table,
		schema.BookChapter.Table,
		schema.BookChapter.BookID, schema.BookChapterPageContent.BookID,
		schema.BookChapter.ChapterNumber, schema.BookChapterPageContent.ChapterNumber,
		schema.BookChapterPageContent.BookID, schema.BookChapterPageContent.ChapterNumber,
		schema.BookChapterPageContent.PageNumber, schema.BookChapterPageContent.IsDeleted,
	)

	content := &PageContent{
		BookID:        bookID,
		ChapterNumber: chapterNumber,
		PageNumber:    pageNumber,
	}

	err := repository.pool.QueryRow(context, query, bookID, chapterNumber, pageNumber).Scan(
		&content.Content, &content.ChapterTitle, &content.TotalPagesInChapter,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_page_content")
	}

	return content, nil
}
