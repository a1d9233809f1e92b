// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag owns the film tag vocabulary and the autocomplete used to attach
tags to a film during upload.

Core Responsibility:

  - Vocabulary: the curated set of known tags (class, club, genre).
  - Suggest: the single pure function that derives autocomplete options.
  - Selector: multi-select state with case-insensitive de-duplication.

Freeform tags outside the vocabulary are allowed; they live on the film and
never grow the curated vocabulary.
*/
package tag

import (
	"time"

	"github.com/taibuivan/shortwave/pkg/slice"
)

// DefaultVocabulary is used when TAG_VOCABULARY is not configured.
var DefaultVocabulary = []string{
	"RTF 304",
	"DKA Blue Chip",
	"BFP",
	"The Collective",
	"The New Project",
	"Directing Workshop",
	"Advanced Narrative",
}

// Tag is a curated vocabulary entry.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"-"`
}

// Suggestion is the autocomplete state for one query.
type Suggestion struct {
	Suggestions []string `json:"suggestions"`
	ShowCreate  bool     `json:"show_create"`
}

// # Field Identifiers

const (
	FieldQuery    = "q"
	FieldSelected = "selected"
	FieldTags     = "tags"
)

// Names projects tags onto their display names, preserving order.
func Names(tags []*Tag) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return slice.Map(tags, func(t *Tag) string { return t.Name })
}
