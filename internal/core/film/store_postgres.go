// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/shortwave/internal/platform/database/schema"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on catalog.film.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed film store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns is the projection shared by every read.
var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s`,
	schema.CatalogFilm.ID,
	schema.CatalogFilm.OwnerID,
	schema.CatalogFilm.YoutubeURL,
	schema.CatalogFilm.ThumbnailURL,
	schema.CatalogFilm.Title,
	schema.CatalogFilm.Logline,
	schema.CatalogFilm.Tags,
	schema.CatalogFilm.CreatedAt,
	schema.CatalogFilm.UpdatedAt,
)

func scanFilm(row pgx.Row) (*Film, error) {
	f := &Film{}
	err := row.Scan(
		&f.ID, &f.OwnerID, &f.YoutubeURL, &f.ThumbnailURL,
		&f.Title, &f.Logline, &f.Tags, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
	return f, nil
}

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		selectColumns, schema.CatalogFilm.Table,
		schema.CatalogFilm.CreatedAt, schema.CatalogFilm.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_films")
	}
	defer rows.Close()

	films := make([]*Film, 0)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_film")
		}
		films = append(films, f)
	}

	return films, dberr.Wrap(rows.Err(), "list_films")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogFilm.Table, schema.CatalogFilm.ID)

	f, err := scanFilm(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_film_by_id")
	}
	return f, nil
}

func (repository *PostgresRepository) Create(context context.Context, film *Film) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
	`,
		schema.CatalogFilm.Table,
		schema.CatalogFilm.ID,
		schema.CatalogFilm.OwnerID,
		schema.CatalogFilm.YoutubeURL,
		schema.CatalogFilm.ThumbnailURL,
		schema.CatalogFilm.Title,
		schema.CatalogFilm.Logline,
		schema.CatalogFilm.Tags,
		schema.CatalogFilm.CreatedAt,
		schema.CatalogFilm.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		film.ID, film.OwnerID, film.YoutubeURL, film.ThumbnailURL,
		film.Title, film.Logline, film.Tags, film.CreatedAt, film.UpdatedAt,
	)
	return dberr.Wrap(err, "create_film")
}
