// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/shortwave/internal/core/search"
	"github.com/taibuivan/shortwave/internal/core/video"
	"github.com/taibuivan/shortwave/internal/platform/apperr"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
	"github.com/taibuivan/shortwave/internal/platform/validate"
	"github.com/taibuivan/shortwave/pkg/uuid"
)

// Service implements the catalogue use cases.
type Service struct {
	repo    Repository
	cache   SnapshotCache
	authors AuthorSource
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a film service. cache and authors may be nil.
func NewService(repo Repository, cache SnapshotCache, authors AuthorSource, logger *slog.Logger) *Service {
	if cache == nil {
		cache = nopCache{}
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		authors: authors,
		logger:  logger,
		now:     time.Now,
	}
}

// # Discovery

/*
Snapshot returns the whole collection, newest first.

Description: The cached copy is preferred. Cache failures are logged and the
collection is read from storage instead.
*/
func (service *Service) Snapshot(context context.Context) ([]*Film, error) {
	films, generation, ok, err := service.cache.Load(context)
	if err != nil {
		service.logger.Warn("film_snapshot_cache_load_failed", slog.Any("error", err))
	}
	if ok {
		return films, nil
	}

	films, err = service.repo.ListAll(context)
	if err != nil {
		return nil, fmt.Errorf("film_service_snapshot_failed: %w", err)
	}

	if err := service.cache.Store(context, generation, films); err != nil {
		service.logger.Warn("film_snapshot_cache_store_failed", slog.Any("error", err))
	}
	return films, nil
}

/*
ListFilms searches the collection.

Parameters:
  - context: context.Context
  - query: string (blank returns the whole collection)

Returns:
  - *Listing: Matches in collection order plus the exact-title flags
  - error: Storage failures
*/
func (service *Service) ListFilms(context context.Context, query string) (*Listing, error) {
	films, err := service.Snapshot(context)
	if err != nil {
		return nil, err
	}

	result := search.Search(films, query)
	listing := &Listing{
		Films:              result.Records,
		HasExactTitleMatch: result.HasExactTitleMatch,
		ShowCreate:         result.ShowCreate(query),
	}
	if listing.Films == nil {
		listing.Films = []*Film{}
	}
	return listing, nil
}

/*
GetFilm returns the film page payload.

Description: An unknown or malformed id is reported as not found. A missing
author profile is tolerated; the film is still returned.
*/
func (service *Service) GetFilm(context context.Context, id string) (*Detail, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Film")
	}

	film, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Film")
		}
		return nil, fmt.Errorf("film_service_get_failed: %w", err)
	}

	detail := &Detail{Film: film, EmbedURL: film.EmbedURL()}
	if service.authors != nil && film.OwnerID != "" {
		author, err := service.authors.LookupAuthor(context, film.OwnerID)
		if err != nil {
			service.logger.Warn("film_author_lookup_failed",
				slog.String("film_id", film.ID),
				slog.String("owner_id", film.OwnerID),
				slog.Any("error", err),
			)
		} else {
			detail.Author = author
		}
	}

	return detail, nil
}

// # Publishing

/*
CreateFilm persists a draft owned by ownerID.

Description: The thumbnail is always re-derived from the video link and is
empty for links without a video id. The cached snapshot is dropped so the
next listing includes the new film.

Returns:
  - *Film: The stored record
  - error: VALIDATION_ERROR for a malformed draft, or storage failures
*/
func (service *Service) CreateFilm(context context.Context, ownerID string, draft Draft) (*Film, error) {
	if ownerID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	draft.ThumbnailURL = video.ThumbnailURL(draft.YoutubeURL)
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	film := draft.Film(uuid.New(), ownerID, now)

	if err := service.repo.Create(context, film); err != nil {
		return nil, fmt.Errorf("film_service_create_failed: %w", err)
	}

	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("film_snapshot_cache_invalidate_failed", slog.Any("error", err))
	}

	service.logger.Info("film_created",
		slog.String("film_id", film.ID),
		slog.String("owner_id", ownerID),
		slog.Int("tags", len(film.Tags)),
	)
	return film, nil
}

func validateDraft(draft Draft) error {
	v := &validate.Validator{}
	v.Required(FieldYoutubeURL, draft.YoutubeURL).
		URL(FieldYoutubeURL, draft.YoutubeURL).
		Required(FieldTitle, draft.Title).
		MaxLen(FieldTitle, draft.Title, MaxTitleLength).
		MaxLen(FieldLogline, draft.Logline, MaxLoglineLength).
		Custom(FieldTags, len(draft.Tags) > MaxTags, fmt.Sprintf("Maximum %d tags", MaxTags))

	for _, t := range draft.Tags {
		v.Required(FieldTags, t).MaxLen(FieldTags, t, MaxTagLength)
	}
	return v.Err()
}
