// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/shortwave/internal/platform/database/schema"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on catalog.tag.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCurated(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = TRUE ORDER BY %s ASC, %s ASC`,
		schema.CatalogTag.ID, schema.CatalogTag.Name, schema.CatalogTag.Slug,
		schema.CatalogTag.SortOrder, schema.CatalogTag.CreatedAt,
		schema.CatalogTag.Table, schema.CatalogTag.IsCurated,
		schema.CatalogTag.SortOrder, schema.CatalogTag.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_curated_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.SortOrder, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, dberr.Wrap(rows.Err(), "list_curated_tags")
}

func (repository *PostgresRepository) SaveCurated(context context.Context, tags []*Tag) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "save_curated_tags")
	}
	defer transaction.Rollback(context)

	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		slugs = append(slugs, t.Slug)
	}

	// Rows dropped from the configured set stay as freeform tags.
	demote := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s AND %s <> ALL($1)`,
		schema.CatalogTag.Table, schema.CatalogTag.IsCurated,
		schema.CatalogTag.IsCurated, schema.CatalogTag.Slug)
	if _, err := transaction.Exec(context, demote, slugs); err != nil {
		return dberr.Wrap(err, "demote_curated_tags")
	}

	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = TRUE, %s = EXCLUDED.%s
	`,
		schema.CatalogTag.Table,
		schema.CatalogTag.Name, schema.CatalogTag.Slug, schema.CatalogTag.IsCurated, schema.CatalogTag.SortOrder,
		schema.CatalogTag.Slug,
		schema.CatalogTag.Name, schema.CatalogTag.Name,
		schema.CatalogTag.IsCurated,
		schema.CatalogTag.SortOrder, schema.CatalogTag.SortOrder,
	)

	batch := &pgx.Batch{}
	for _, t := range tags {
		batch.Queue(upsert, t.Name, t.Slug, t.SortOrder)
	}
	if batch.Len() > 0 {
		if err := transaction.SendBatch(context, batch).Close(); err != nil {
			return dberr.Wrap(err, "save_curated_tags")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "save_curated_tags")
}

func (repository *PostgresRepository) RecordFreeform(context context.Context, tags []*Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, FALSE, 0)
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.CatalogTag.Table,
		schema.CatalogTag.Name, schema.CatalogTag.Slug, schema.CatalogTag.IsCurated, schema.CatalogTag.SortOrder,
		schema.CatalogTag.Slug,
	)

	batch := &pgx.Batch{}
	for _, t := range tags {
		batch.Queue(query, t.Name, t.Slug)
	}
	return repository.send(context, batch, "record_freeform_tags")
}

func (repository *PostgresRepository) send(context context.Context, batch *pgx.Batch, action string) error {
	if batch.Len() == 0 {
		return nil
	}
	return dberr.Wrap(repository.db.SendBatch(context, batch).Close(), action)
}
