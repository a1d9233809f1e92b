// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shortwave/internal/platform/migration"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/shortwave", "pgx5://u:p@db:5432/shortwave"},
		{"postgresql://db/shortwave?sslmode=disable", "pgx5://db/shortwave?sslmode=disable"},
		{"pgx5://db/shortwave", "pgx5://db/shortwave"},
		{"host=db dbname=shortwave", "host=db dbname=shortwave"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5DSN(tt.in))
		})
	}
}
