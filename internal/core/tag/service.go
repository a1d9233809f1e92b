// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/shortwave/pkg/slug"
)

// Service serves the curated vocabulary and records freeform tags.
type Service struct {
	repo       Repository
	vocabulary []string
	logger     *slog.Logger
}

// NewService creates a tag service. vocabulary is the configured curated set;
// an empty slice falls back to [DefaultVocabulary]. Names sharing a slug with
// an earlier name, or with no slug at all, are dropped.
func NewService(repo Repository, vocabulary []string, logger *slog.Logger) *Service {
	vocabulary = uniqueSlugs(vocabulary, logger)
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	return &Service{
		repo:       repo,
		vocabulary: vocabulary,
		logger:     logger,
	}
}

// Seed writes the configured vocabulary to storage, in configured order.
func (service *Service) Seed(context context.Context) error {
	tags := make([]*Tag, 0, len(service.vocabulary))
	for i, name := range service.vocabulary {
		t := newTag(name)
		t.SortOrder = i
		tags = append(tags, t)
	}

	if err := service.repo.SaveCurated(context, tags); err != nil {
		return fmt.Errorf("tag_service_seed_failed: %w", err)
	}

	service.logger.Info("tag_vocabulary_seeded", slog.Int("count", len(tags)))
	return nil
}

// Vocabulary returns the curated tag names.
//
// Storage failures and an unseeded table fall back to the configured set so
// the upload form is never left without suggestions.
func (service *Service) Vocabulary(context context.Context) []string {
	tags, err := service.repo.ListCurated(context)
	if err != nil {
		service.logger.Warn("tag_vocabulary_fallback", slog.Any("error", err))
		return service.vocabulary
	}
	if len(tags) == 0 {
		return service.vocabulary
	}
	return Names(tags)
}

// Suggest computes the autocomplete state for a query against the vocabulary.
func (service *Service) Suggest(context context.Context, selected []string, query string) *Suggestion {
	vocabulary := service.Vocabulary(context)
	return &Suggestion{
		Suggestions: Suggest(vocabulary, selected, query),
		ShowCreate:  ShowCreate(vocabulary, selected, query),
	}
}

// RecordFreeform stores the tags of a submission that are not part of the
// vocabulary. The curated set is unaffected.
func (service *Service) RecordFreeform(context context.Context, tags []string) error {
	vocabulary := service.Vocabulary(context)

	freeform := make([]*Tag, 0)
	for _, name := range Dedupe(tags) {
		if indexFold(vocabulary, name) >= 0 {
			continue
		}
		if t := newTag(name); t != nil {
			freeform = append(freeform, t)
		}
	}

	if len(freeform) == 0 {
		return nil
	}

	if err := service.repo.RecordFreeform(context, freeform); err != nil {
		return fmt.Errorf("tag_service_record_failed: %w", err)
	}

	service.logger.Info("freeform_tags_recorded", slog.Int("count", len(freeform)))
	return nil
}

// uniqueSlugs keeps the first name for each slug, in order.
func uniqueSlugs(names []string, logger *slog.Logger) []string {
	seen := make(map[string]string, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range Dedupe(names) {
		s := slug.From(name)
		if s == "" {
			continue
		}
		if kept, ok := seen[s]; ok {
			logger.Warn("tag_vocabulary_slug_collision",
				slog.String("name", name), slog.String("kept", kept), slog.String("slug", s))
			continue
		}
		seen[s] = name
		unique = append(unique, name)
	}
	return unique
}

// newTag builds a tag row, or nil when the name has no sluggable characters.
func newTag(name string) *Tag {
	s := slug.From(name)
	if s == "" {
		return nil
	}
	return &Tag{Name: name, Slug: s}
}
