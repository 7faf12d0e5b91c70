// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/book"
	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/pkg/pagination"
	"github.com/taibuivan/hondana/pkg/slice"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed favorite store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// favoriteColumns is the shared projection for bare favorite rows.
func favoriteColumns(alias string) string {
	cols := schema.Favorite.Columns()
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

func scanFavorite(row interface{ Scan(...any) error }, extra ...any) (*Favorite, error) {
	favorite := &Favorite{}
	targets := []any{
		&favorite.ID, &favorite.UserID, &favorite.BookID,
		&favorite.CreatedAt, &favorite.UpdatedAt, &favorite.IsDeleted,
	}
	targets = append(targets, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return favorite, nil
}

func (repository *PostgresRepository) ListPageByUser(context context.Context, userID string, plan pagination.Plan) (pagination.Page[*Favorite], error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s f
		WHERE f.%s = false AND f.%s = $1
		ORDER BY %s
		OFFSET $2 LIMIT $3`,
		favoriteColumns("f"), schema.Favorite.Table, schema.Favorite.IsDeleted,
		schema.Favorite.UserID, SortableColumns.OrderBy(plan))

	rows, err := repository.pool.Query(context, query, userID, plan.Offset(), plan.Limit())
	if err != nil {
		return pagination.Page[*Favorite]{}, dberr.Wrap(err, "list favorites")
	}
	defer rows.Close()

	var totalItems int64
	items := []*Favorite{}
	for rows.Next() {
		favorite, err := scanFavorite(rows, &totalItems)
		if err != nil {
			return pagination.Page[*Favorite]{}, dberr.Wrap(err, "scan favorite")
		}
		items = append(items, favorite)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[*Favorite]{}, dberr.Wrap(err, "list favorites")
	}

	return pagination.Page[*Favorite]{Items: items, TotalItems: totalItems, Plan: plan}, nil
}

func (repository *PostgresRepository) FindWithBooks(context context.Context, ids []int64) ([]*Favorite, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s f
		JOIN %s b ON b.%s = f.%s
		WHERE f.%s = ANY($1)`,
		favoriteColumns("f"),
		schema.Book.ID, schema.Book.Title, schema.Book.Description, schema.Book.Authors,
		schema.Book.Publisher, schema.Book.PublicationDate, schema.Book.Price, schema.Book.PageCount,
		schema.Book.ISBN, schema.Book.ImagePath, schema.Book.ReviewCount, schema.Book.AverageRating,
		schema.Book.Popularity,
		schema.Favorite.Table,
		schema.Book.Table, schema.Book.ID, schema.Favorite.BookID,
		schema.Favorite.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "hydrate favorites")
	}
	defer rows.Close()

	favorites := []*Favorite{}
	for rows.Next() {
		related := &book.Book{}
		var authors string
		favorite, err := scanFavorite(rows,
			&related.ID, &related.Title, &related.Description, &authors,
			&related.Publisher, &related.PublicationDate, &related.Price, &related.PageCount,
			&related.ISBN, &related.ImagePath, &related.ReviewCount, &related.AverageRating,
			&related.Popularity)
		if err != nil {
			return nil, dberr.Wrap(err, "scan favorite book")
		}
		if authors != "" {
			related.Authors = slice.Map(strings.Split(authors, ","), strings.TrimSpace)
		}
		favorite.Book = related
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "hydrate favorites")
	}
	return favorites, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Favorite, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s f WHERE f.%s = $1`,
		favoriteColumns("f"), schema.Favorite.Table, schema.Favorite.ID)

	favorite, err := scanFavorite(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get favorite")
	}
	return favorite, nil
}

func (repository *PostgresRepository) FindByUserAndBook(context context.Context, userID, bookID string) (*Favorite, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s f WHERE f.%s = $1 AND f.%s = $2`,
		favoriteColumns("f"), schema.Favorite.Table, schema.Favorite.UserID, schema.Favorite.BookID)

	favorite, err := scanFavorite(repository.pool.QueryRow(context, query, userID, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find favorite by user and book")
	}
	return favorite, nil
}

func (repository *PostgresRepository) Create(context context.Context, favorite *Favorite) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s, %s`,
		schema.Favorite.Table, schema.Favorite.UserID, schema.Favorite.BookID,
		schema.Favorite.ID, schema.Favorite.CreatedAt, schema.Favorite.UpdatedAt)

	err := repository.pool.QueryRow(context, query, favorite.UserID, favorite.BookID).
		Scan(&favorite.ID, &favorite.CreatedAt, &favorite.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create favorite")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, favorite *Favorite) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = now()
		WHERE %s = $2
		RETURNING %s`,
		schema.Favorite.Table, schema.Favorite.IsDeleted, schema.Favorite.UpdatedAt,
		schema.Favorite.ID, schema.Favorite.UpdatedAt)

	err := repository.pool.QueryRow(context, query, favorite.IsDeleted, favorite.ID).
		Scan(&favorite.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update favorite")
	}
	return nil
}

func (repository *PostgresRepository) Stats(context context.Context, bookID string) (stats.FavoriteStats, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = false`,
		schema.Favorite.Table, schema.Favorite.BookID, schema.Favorite.IsDeleted)

	aggregate := stats.FavoriteStats{BookID: bookID}
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&aggregate.FavoriteCount); err != nil {
		return stats.FavoriteStats{}, dberr.Wrap(err, "aggregate favorite stats")
	}
	return aggregate, nil
}

func (repository *PostgresRepository) BookExists(context context.Context, bookID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = false)`,
		schema.Book.Table, schema.Book.ID, schema.Book.IsDeleted)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check book exists")
	}
	return exists, nil
}
