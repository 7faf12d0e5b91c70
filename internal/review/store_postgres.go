// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// reviewColumns is the shared projection for bare review rows.
func reviewColumns(alias string) string {
	cols := schema.Review.Columns()
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

// scanReview reads the shared projection into a [Review].
func scanReview(row interface{ Scan(...any) error }, extra ...any) (*Review, error) {
	review := &Review{}
	targets := []any{
		&review.ID, &review.UserID, &review.BookID, &review.Comment, &review.Rating,
		&review.CreatedAt, &review.UpdatedAt, &review.IsDeleted,
	}
	targets = append(targets, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *PostgresRepository) ListPageByBook(context context.Context, bookID string, plan pagination.Plan) (pagination.Page[*Review], error) {
	predicate := fmt.Sprintf("r.%s = $1", schema.Review.BookID)
	return repository.listPage(context, predicate, []any{bookID}, plan)
}

func (repository *PostgresRepository) ListPageByUser(context context.Context, userID, bookID string, plan pagination.Plan) (pagination.Page[*Review], error) {
	predicate := fmt.Sprintf("r.%s = $1", schema.Review.UserID)
	arguments := []any{userID}
	if bookID != "" {
		predicate += fmt.Sprintf(" AND r.%s = $2", schema.Review.BookID)
		arguments = append(arguments, bookID)
	}
	return repository.listPage(context, predicate, arguments, plan)
}

// listPage runs the index query of the two-query strategy: bare review
// rows plus the windowed total count, relations left for FindWithRelations.
func (repository *PostgresRepository) listPage(context context.Context, predicate string, arguments []any, plan pagination.Plan) (pagination.Page[*Review], error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s r
		WHERE r.%s = false AND %s
		ORDER BY %s
		OFFSET $%d LIMIT $%d`,
		reviewColumns("r"), schema.Review.Table, schema.Review.IsDeleted, predicate,
		SortableColumns.OrderBy(plan), len(arguments)+1, len(arguments)+2)
	arguments = append(arguments, plan.Offset(), plan.Limit())

	rows, err := repository.pool.Query(context, query, arguments...)
	if err != nil {
		return pagination.Page[*Review]{}, dberr.Wrap(err, "list reviews")
	}
	defer rows.Close()

	var totalItems int64
	items := []*Review{}
	for rows.Next() {
		review, err := scanReview(rows, &totalItems)
		if err != nil {
			return pagination.Page[*Review]{}, dberr.Wrap(err, "scan review")
		}
		items = append(items, review)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[*Review]{}, dberr.Wrap(err, "list reviews")
	}

	return pagination.Page[*Review]{Items: items, TotalItems: totalItems, Plan: plan}, nil
}

func (repository *PostgresRepository) FindWithRelations(context context.Context, ids []int64) ([]*Review, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.%s, u.%s,
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		JOIN %s b ON b.%s = r.%s
		WHERE r.%s = ANY($1)`,
		reviewColumns("r"), schema.User.Name, schema.User.AvatarPath,
		schema.Book.ID, schema.Book.Title, schema.Book.Description, schema.Book.Authors,
		schema.Book.Publisher, schema.Book.PublicationDate, schema.Book.Price, schema.Book.PageCount,
		schema.Book.ISBN, schema.Book.ImagePath, schema.Book.ReviewCount, schema.Book.AverageRating,
		schema.Book.Popularity,
		schema.Review.Table,
		schema.User.Table, schema.User.ID, schema.Review.UserID,
		schema.Book.Table, schema.Book.ID, schema.Review.BookID,
		schema.Review.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "hydrate reviews")
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		review := &Review{}
		related := &book.Book{}
		var authors string
		err := rows.Scan(
			&review.ID, &review.UserID, &review.BookID, &review.Comment, &review.Rating,
			&review.CreatedAt, &review.UpdatedAt, &review.IsDeleted,
			&review.UserName, &review.AvatarPath,
			&related.ID, &related.Title, &related.Description, &authors,
			&related.Publisher, &related.PublicationDate, &related.Price, &related.PageCount,
			&related.ISBN, &related.ImagePath, &related.ReviewCount, &related.AverageRating,
			&related.Popularity)
		if err != nil {
			return nil, dberr.Wrap(err, "scan review relations")
		}
		if authors != "" {
			related.Authors = slice.Map(strings.Split(authors, ","), strings.TrimSpace)
		}
		review.Book = related
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "hydrate reviews")
	}
	return reviews, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`,
		reviewColumns("r"), schema.Review.Table, schema.Review.ID)

	review, err := scanReview(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get review")
	}
	return review, nil
}

func (repository *PostgresRepository) FindByUserAndBook(context context.Context, userID, bookID string) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1 AND r.%s = $2`,
		reviewColumns("r"), schema.Review.Table, schema.Review.UserID, schema.Review.BookID)

	review, err := scanReview(repository.pool.QueryRow(context, query, userID, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find review by user and book")
	}
	return review, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.Review.Table, schema.Review.UserID, schema.Review.BookID,
		schema.Review.Comment, schema.Review.Rating,
		schema.Review.ID, schema.Review.CreatedAt, schema.Review.UpdatedAt)

	err := repository.pool.QueryRow(context, query,
		review.UserID, review.BookID, review.Comment, review.Rating).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create review")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = now()
		WHERE %s = $4
		RETURNING %s`,
		schema.Review.Table, schema.Review.Comment, schema.Review.Rating,
		schema.Review.IsDeleted, schema.Review.UpdatedAt,
		schema.Review.ID, schema.Review.UpdatedAt)

	err := repository.pool.QueryRow(context, query,
		review.Comment, review.Rating, review.IsDeleted, review.ID).
		Scan(&review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update review")
	}
	return nil
}

func (repository *PostgresRepository) Stats(context context.Context, bookID string) (stats.ReviewStats, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(AVG(%s), 0)
		FROM %s
		WHERE %s = $1 AND %s = false`,
		schema.Review.Rating, schema.Review.Table, schema.Review.BookID, schema.Review.IsDeleted)

	aggregate := stats.ReviewStats{BookID: bookID}
	err := repository.pool.QueryRow(context, query, bookID).
		Scan(&aggregate.ReviewCount, &aggregate.AverageRating)
	if err != nil {
		return stats.ReviewStats{}, dberr.Wrap(err, "aggregate review stats")
	}
	aggregate.AverageRating = stats.Round2(aggregate.AverageRating)
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
