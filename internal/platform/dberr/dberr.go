// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps low-level database errors to [apperr.AppError]s.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/shortwave/internal/platform/apperr"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrDuplicate is returned when an insert breaks a unique constraint.
	ErrDuplicate = apperr.Conflict("Resource already exists")
)

// Wrap classifies a database error. Missing rows and unique violations get
// their own sentinel; anything else becomes an internal error tagged with
// action for the logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
		return ErrDuplicate
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
