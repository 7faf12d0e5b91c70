// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed bookmark store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// bookmarkColumns is the shared projection for bare bookmark rows.
func bookmarkColumns(alias string) string {
	cols := schema.Bookmark.Columns()
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

func scanBookmark(row interface{ Scan(...any) error }, extra ...any) (*Bookmark, error) {
	bookmark := &Bookmark{}
	targets := []any{
		&bookmark.ID, &bookmark.UserID, &bookmark.PageContentID, &bookmark.Note,
		&bookmark.CreatedAt, &bookmark.UpdatedAt, &bookmark.IsDeleted,
	}
	targets = append(targets, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (repository *PostgresRepository) ListPageByUser(context context.Context, userID string, plan pagination.Plan) (pagination.Page[*Bookmark], error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s m
		WHERE m.%s = false AND m.%s = $1
		ORDER BY %s
		OFFSET $2 LIMIT $3`,
		bookmarkColumns("m"), schema.Bookmark.Table, schema.Bookmark.IsDeleted,
		schema.Bookmark.UserID, SortableColumns.OrderBy(plan))

	rows, err := repository.pool.Query(context, query, userID, plan.Offset(), plan.Limit())
	if err != nil {
		return pagination.Page[*Bookmark]{}, dberr.Wrap(err, "list bookmarks")
	}
	defer rows.Close()

	var totalItems int64
	items := []*Bookmark{}
	for rows.Next() {
		bookmark, err := scanBookmark(rows, &totalItems)
		if err != nil {
			return pagination.Page[*Bookmark]{}, dberr.Wrap(err, "scan bookmark")
		}
		items = append(items, bookmark)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[*Bookmark]{}, dberr.Wrap(err, "list bookmarks")
	}

	return pagination.Page[*Bookmark]{Items: items, TotalItems: totalItems, Plan: plan}, nil
}

func (repository *PostgresRepository) FindWithLocations(context context.Context, ids []int64) ([]*Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT %s, p.%s, b.%s, p.%s, p.%s
		FROM %s m
		JOIN %s p ON p.%s = m.%s
		JOIN %s b ON b.%s = p.%s
		WHERE m.%s = ANY($1)`,
		bookmarkColumns("m"),
		schema.BookChapterPageContent.BookID, schema.Book.Title,
		schema.BookChapterPageContent.ChapterNumber, schema.BookChapterPageContent.PageNumber,
		schema.Bookmark.Table,
		schema.BookChapterPageContent.Table, schema.BookChapterPageContent.ID, schema.Bookmark.PageContentID,
		schema.Book.Table, schema.Book.ID, schema.BookChapterPageContent.BookID,
		schema.Bookmark.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "hydrate bookmarks")
	}
	defer rows.Close()

	bookmarks := []*Bookmark{}
	for rows.Next() {
		bookmark := &Bookmark{}
		err := rows.Scan(
			&bookmark.ID, &bookmark.UserID, &bookmark.PageContentID, &bookmark.Note,
			&bookmark.CreatedAt, &bookmark.UpdatedAt, &bookmark.IsDeleted,
			&bookmark.BookID, &bookmark.BookTitle, &bookmark.ChapterNumber, &bookmark.PageNumber)
		if err != nil {
			return nil, dberr.Wrap(err, "scan bookmark location")
		}
		bookmarks = append(bookmarks, bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "hydrate bookmarks")
	}
	return bookmarks, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s m WHERE m.%s = $1`,
		bookmarkColumns("m"), schema.Bookmark.Table, schema.Bookmark.ID)

	bookmark, err := scanBookmark(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get bookmark")
	}
	return bookmark, nil
}

func (repository *PostgresRepository) FindByUserAndPage(context context.Context, userID string, pageContentID int64) (*Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s m WHERE m.%s = $1 AND m.%s = $2`,
		bookmarkColumns("m"), schema.Bookmark.Table, schema.Bookmark.UserID, schema.Bookmark.PageContentID)

	bookmark, err := scanBookmark(repository.pool.QueryRow(context, query, userID, pageContentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find bookmark by user and page")
	}
	return bookmark, nil
}

func (repository *PostgresRepository) Create(context context.Context, bookmark *Bookmark) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s`,
		schema.Bookmark.Table, schema.Bookmark.UserID, schema.Bookmark.PageContentID, schema.Bookmark.Note,
		schema.Bookmark.ID, schema.Bookmark.CreatedAt, schema.Bookmark.UpdatedAt)

	err := repository.pool.QueryRow(context, query,
		bookmark.UserID, bookmark.PageContentID, bookmark.Note).
		Scan(&bookmark.ID, &bookmark.CreatedAt, &bookmark.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create bookmark")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, bookmark *Bookmark) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = now()
		WHERE %s = $3
		RETURNING %s`,
		schema.Bookmark.Table, schema.Bookmark.Note, schema.Bookmark.IsDeleted, schema.Bookmark.UpdatedAt,
		schema.Bookmark.ID, schema.Bookmark.UpdatedAt)

	err := repository.pool.QueryRow(context, query,
		bookmark.Note, bookmark.IsDeleted, bookmark.ID).
		Scan(&bookmark.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update bookmark")
	}
	return nil
}

func (repository *PostgresRepository) PageExists(context context.Context, pageContentID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = false)`,
		schema.BookChapterPageContent.Table, schema.BookChapterPageContent.ID,
		schema.BookChapterPageContent.IsDeleted)

	var exists bool
	if err := repository.pool.QueryRow(context, query, pageContentID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check page content exists")
	}
	return exists, nil
}
