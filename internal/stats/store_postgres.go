// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
)

// PostgresStore implements [Store] on top of pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed stats store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// AggregateReviews counts and averages the non-deleted reviews for a book.
func (store *PostgresStore) AggregateReviews(context context.Context, bookID string) (ReviewAggregate, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*), COALESCE(AVG(%s), 0) FROM %s WHERE %s = $1 AND %s = false`,
		schema.Review.Rating, schema.Review.Table, schema.Review.BookID, schema.Review.IsDeleted,
	)

	var aggregate ReviewAggregate
	err := store.pool.QueryRow(context, query, bookID).Scan(&aggregate.ReviewCount, &aggregate.AverageRating)
	if err != nil {
		return ReviewAggregate{}, dberr.Wrap(err, "aggregate_reviews")
	}

	return aggregate, nil
}

// SaveBookStats writes the derived metrics onto the book row.
func (store *PostgresStore) SaveBookStats(context context.Context, bookID string, reviewCount int64, averageRating, popularity float64) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $1 AND %s = false`,
		schema.Book.Table,
		schema.Book.ReviewCount, schema.Book.AverageRating, schema.Book.Popularity, schema.Book.UpdatedAt,
		schema.Book.ID, schema.Book.IsDeleted,
	)

	tag, err := store.pool.Exec(context, query, bookID, reviewCount, averageRating, popularity)
	if err != nil {
		return dberr.Wrap(err, "save_book_stats")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// ActiveBookIDs pages through non-deleted book IDs in stable ID order.
func (store *PostgresStore) ActiveBookIDs(context context.Context, offset, limit int) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = false ORDER BY %s ASC OFFSET $1 LIMIT $2`,
		schema.Book.ID, schema.Book.Table, schema.Book.IsDeleted, schema.Book.ID,
	)

	rows, err := store.pool.Query(context, query, offset, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "active_book_ids")
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_book_id")
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
