// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload publishes new films.

A submission arrives as one request carrying every field. It is replayed
through the same [wizard.Wizard] the interactive client drives, so the
server enforces exactly the step rules the user saw: each step must be
valid before the next, tags are de-duplicated by the selector, and the
draft is built by the wizard's Submit.
*/
package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/wizard"
)

// Request is the submitted form.
type Request struct {
	YoutubeURL string   `json:"youtube_url"`
	Title      string   `json:"title"`
	Logline    string   `json:"logline"`
	Tags       []string `json:"tags"`
}

// # Collaborators

// Publisher persists drafts. Implemented by [film.Service].
type Publisher interface {
	CreateFilm(context context.Context, ownerID string, draft film.Draft) (*film.Film, error)
}

// Vocabulary serves curated tags and records freeform ones. Implemented by
// tag.Service.
type Vocabulary interface {
	Vocabulary(context context.Context) []string
	RecordFreeform(context context.Context, tags []string) error
}

// Service publishes submissions.
type Service struct {
	films  Publisher
	tags   Vocabulary
	logger *slog.Logger
}

func NewService(films Publisher, tags Vocabulary, logger *slog.Logger) *Service {
	return &Service{films: films, tags: tags, logger: logger}
}

/*
Prepare replays request through the wizard and returns the finished draft.

Description: Tags are committed one by one as if typed and confirmed with
Enter, so a case-insensitive vocabulary match takes its canonical casing and
duplicates collapse.

Returns:
  - film.Draft: Trimmed fields with a derived thumbnail
  - error: VALIDATION_ERROR naming the first step that blocks
*/
func (service *Service) Prepare(context context.Context, request Request) (film.Draft, error) {
	w := wizard.New(service.tags.Vocabulary(context), wizard.Instant())

	values := map[wizard.Step]string{
		wizard.StepVideoURL: request.YoutubeURL,
		wizard.StepTitle:    request.Title,
		wizard.StepLogline:  request.Logline,
	}
	for w.Step() != wizard.LastStep {
		w.EditField(values[w.Step()])
		if w.Advance() != wizard.Moved {
			return film.Draft{}, w.Validate()
		}
	}

	for _, t := range request.Tags {
		w.EditField(t)
		w.Tags().Commit()
	}

	draft, err := w.Submit()
	if err != nil {
		return film.Draft{}, fmt.Errorf("upload_service_prepare_failed: %w", err)
	}
	return draft, nil
}

/*
Publish stores a submission owned by ownerID.

Description: Recording freeform tags is best effort; a failure is logged and
the film is still returned.
*/
func (service *Service) Publish(context context.Context, ownerID string, request Request) (*film.Film, error) {
	draft, err := service.Prepare(context, request)
	if err != nil {
		return nil, err
	}

	created, err := service.films.CreateFilm(context, ownerID, draft)
	if err != nil {
		return nil, err
	}

	if err := service.tags.RecordFreeform(context, created.Tags); err != nil {
		service.logger.Warn("upload_freeform_tags_not_recorded",
			slog.String("film_id", created.ID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("upload_published",
		slog.String("film_id", created.ID),
		slog.String("owner_id", ownerID),
	)
	return created, nil
}
