// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shortwave/internal/platform/apperr"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	assert.ErrorIs(t, dberr.Wrap(pgx.ErrNoRows, "find"), dberr.ErrNotFound)
	assert.ErrorIs(t, dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "find"), dberr.ErrNotFound)

	duplicate := dberr.Wrap(&pgconn.PgError{Code: "23505"}, "insert")
	assert.ErrorIs(t, duplicate, dberr.ErrDuplicate)
	assert.True(t, apperr.HasCode(duplicate, apperr.CodeConflict))

	cause := errors.New("connection reset")
	internal := dberr.Wrap(cause, "list_films")
	assert.True(t, apperr.HasCode(internal, apperr.CodeInternal))
	assert.ErrorIs(t, internal, cause)
	assert.Contains(t, apperr.As(internal).Cause.Error(), "list_films")
}
