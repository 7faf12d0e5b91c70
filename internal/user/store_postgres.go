// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed user store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// userColumns is the shared projection for user rows, with the role names
// folded in via a json_agg sub-select.
func userColumns(alias string) string {
	cols := []string{
		schema.User.ID, schema.User.Email, schema.User.Password, schema.User.Name,
		schema.User.AvatarPath, schema.User.CreatedAt, schema.User.UpdatedAt,
	}
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	roles := fmt.Sprintf(`COALESCE((
		SELECT json_agg(r.%s ORDER BY r.%s)
		FROM %s ur
		JOIN %s r ON r.%s = ur.%s
		WHERE ur.%s = %s.%s
	), '[]') AS roles`,
		schema.Role.Name, schema.Role.Name,
		schema.UserRole.Table,
		schema.Role.Table, schema.Role.ID, schema.UserRole.RoleID,
		schema.UserRole.UserID, alias, schema.User.ID)
	return strings.Join(cols, ", ") + ", " + roles
}

func scanUser(row interface{ Scan(...any) error }, extra ...any) (*User, error) {
	user := &User{}
	var roles []string
	targets := []any{
		&user.ID, &user.Email, &user.Password, &user.Name,
		&user.AvatarPath, &user.CreatedAt, &user.UpdatedAt, &roles,
	}
	targets = append(targets, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s u WHERE u.%s = $1 AND u.%s = false`,
		userColumns("u"), schema.User.Table, schema.User.ID, schema.User.IsDeleted)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get user")
	}
	return user, nil
}

func (repository *PostgresRepository) GetByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s u WHERE u.%s = $1 AND u.%s = false`,
		userColumns("u"), schema.User.Table, schema.User.Email, schema.User.IsDeleted)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "get user by email")
	}
	return user, nil
}

func (repository *PostgresRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.User.Table, schema.User.Email)

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check email exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin create user")
	}
	defer transaction.Rollback(context)

	insertUser := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		schema.User.Table, schema.User.ID, schema.User.Email, schema.User.Password,
		schema.User.Name, schema.User.AvatarPath,
		schema.User.CreatedAt, schema.User.UpdatedAt)

	err = transaction.QueryRow(context, insertUser,
		user.ID, user.Email, user.Password, user.Name, user.AvatarPath).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create user")
	}

	insertRole := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, %s FROM %s WHERE %s = $2`,
		schema.UserRole.Table, schema.UserRole.UserID, schema.UserRole.RoleID,
		schema.Role.ID, schema.Role.Table, schema.Role.Name)

	for _, role := range user.Roles {
		if _, err := transaction.Exec(context, insertRole, user.ID, role); err != nil {
			return dberr.Wrap(err, "assign role")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit create user")
	}
	return nil
}

func (repository *PostgresRepository) UpdateProfile(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = now()
		WHERE %s = $3 AND %s = false
		RETURNING %s`,
		schema.User.Table, schema.User.Name, schema.User.AvatarPath, schema.User.UpdatedAt,
		schema.User.ID, schema.User.IsDeleted, schema.User.UpdatedAt)

	err := repository.pool.QueryRow(context, query, user.Name, user.AvatarPath, user.ID).
		Scan(&user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update profile")
	}
	return nil
}

func (repository *PostgresRepository) UpdateEmail(context context.Context, id, email string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = now() WHERE %s = $2 AND %s = false`,
		schema.User.Table, schema.User.Email, schema.User.UpdatedAt,
		schema.User.ID, schema.User.IsDeleted)

	tag, err := repository.pool.Exec(context, query, email, id)
	if err != nil {
		return dberr.Wrap(err, "update email")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = now() WHERE %s = $2 AND %s = false`,
		schema.User.Table, schema.User.Password, schema.User.UpdatedAt,
		schema.User.ID, schema.User.IsDeleted)

	tag, err := repository.pool.Exec(context, query, passwordHash, id)
	if err != nil {
		return dberr.Wrap(err, "update password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) ListPage(context context.Context, plan pagination.Plan) (pagination.Page[*User], error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s u
		WHERE u.%s = false
		ORDER BY %s
		OFFSET $1 LIMIT $2`,
		userColumns("u"), schema.User.Table, schema.User.IsDeleted,
		SortableColumns.OrderBy(plan))

	rows, err := repository.pool.Query(context, query, plan.Offset(), plan.Limit())
	if err != nil {
		return pagination.Page[*User]{}, dberr.Wrap(err, "list users")
	}
	defer rows.Close()

	var totalItems int64
	items := []*User{}
	for rows.Next() {
		user, err := scanUser(rows, &totalItems)
		if err != nil {
			return pagination.Page[*User]{}, dberr.Wrap(err, "scan user")
		}
		items = append(items, user)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[*User]{}, dberr.Wrap(err, "list users")
	}

	return pagination.Page[*User]{Items: items, TotalItems: totalItems, Plan: plan}, nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = true, %s = now() WHERE %s = $1 AND %s = false`,
		schema.User.Table, schema.User.IsDeleted, schema.User.UpdatedAt,
		schema.User.ID, schema.User.IsDeleted)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) ProfileCounts(context context.Context, userID string) (ProfileCounts, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = false),
			(SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = false),
			(SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = false)`,
		schema.Review.Table, schema.Review.UserID, schema.Review.IsDeleted,
		schema.Favorite.Table, schema.Favorite.UserID, schema.Favorite.IsDeleted,
		schema.Bookmark.Table, schema.Bookmark.UserID, schema.Bookmark.IsDeleted)

	counts := ProfileCounts{}
	err := repository.pool.QueryRow(context, query, userID).
		Scan(&counts.ReviewCount, &counts.FavoriteCount, &counts.BookmarkCount)
	if err != nil {
		return ProfileCounts{}, dberr.Wrap(err, "aggregate profile counts")
	}
	return counts, nil
}
