// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shortwave/internal/platform/database/schema"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = fmt.Sprintf(`%s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s, %s`,
	schema.UserAccount.ID,
	schema.UserAccount.Name,
	schema.UserAccount.Email,
	schema.UserAccount.Password,
	schema.UserAccount.PhotoURL,
	schema.UserAccount.Role,
	schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt,
	schema.UserAccount.UpdatedAt,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.PhotoURL,
		&user.Role,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new account.

Returns:
  - error: [dberr.ErrDuplicate] when the email is taken, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.UserAccount.Name,
		schema.UserAccount.Email,
		schema.UserAccount.Password,
		schema.UserAccount.PhotoURL,
		schema.UserAccount.Role,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.UpdatedAt,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.PhotoURL,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "create_account")
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_id")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email")
	}
	return user, nil
}

func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	_, err := repository.pool.Exec(context, query, id, at)
	return dberr.Wrap(err, "touch_account_login")
}
