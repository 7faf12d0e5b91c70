// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed genre store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = false ORDER BY %s ASC`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug, schema.Genre.Description,
		schema.Genre.CreatedAt, schema.Genre.UpdatedAt,
		schema.Genre.Table, schema.Genre.IsDeleted, schema.Genre.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.Description, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Genre, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = false`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug, schema.Genre.Description,
		schema.Genre.CreatedAt, schema.Genre.UpdatedAt,
		schema.Genre.Table, schema.Genre.ID, schema.Genre.IsDeleted,
	)

	genre := &Genre{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&genre.ID, &genre.Name, &genre.Slug, &genre.Description, &genre.CreatedAt, &genre.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_id")
	}

	return genre, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s, %s`,
		schema.Genre.Table, schema.Genre.Name, schema.Genre.Slug, schema.Genre.Description,
		schema.Genre.ID, schema.Genre.CreatedAt, schema.Genre.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, genre.Name, genre.Slug, genre.Description).Scan(
		&genre.ID, &genre.CreatedAt, &genre.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_genre")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $1 AND %s = false`,
		schema.Genre.Table,
		schema.Genre.Name, schema.Genre.Slug, schema.Genre.Description, schema.Genre.UpdatedAt,
		schema.Genre.ID, schema.Genre.IsDeleted,
	)

	tag, err := repository.pool.Exec(context, query, genre.ID, genre.Name, genre.Slug, genre.Description)
	if err != nil {
		return dberr.Wrap(err, "update_genre")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = true, %s = NOW() WHERE %s = $1 AND %s = false`,
		schema.Genre.Table, schema.Genre.IsDeleted, schema.Genre.UpdatedAt,
		schema.Genre.ID, schema.Genre.IsDeleted,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_genre")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
