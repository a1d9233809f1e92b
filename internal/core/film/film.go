// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package film defines the catalogue of short films and the operations that
browse, search, and publish them.

Core Responsibility:

  - Catalogue: the persisted [Film] record and its owner.
  - Discovery: search over an in-memory snapshot of the whole collection.
  - Publishing: turning a validated [Draft] into a stored record.

The collection is small enough that the grid always fetches everything;
search runs over the snapshot rather than in SQL.
*/
package film

import (
	"time"

	"github.com/taibuivan/shortwave/internal/core/video"
)

// # Field Identifiers

const (
	FieldYoutubeURL = "youtube_url"
	FieldTitle      = "title"
	FieldLogline    = "logline"
	FieldTags       = "tags"
)

// # Limits

const (
	MaxTitleLength   = 120
	MaxLoglineLength = 300
	MaxTags          = 12
	MaxTagLength     = 40
)

// # Core Entities

// Film is a single catalogued short.
type Film struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	YoutubeURL   string    `json:"youtube_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Title        string    `json:"title"`
	Logline      string    `json:"logline,omitempty"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (f *Film) SearchTitle() string { return f.Title }
func (f *Film) SearchLogline() string { return f.Logline }
func (f *Film) SearchTags() []string { return f.Tags }

// EmbedURL derives the player URL. Empty when the stored link has no video id.
func (f *Film) EmbedURL() string {
	return video.EmbedURL(f.YoutubeURL)
}

// Draft is a fully validated submission, ready to persist.
//
// Text fields are already trimmed and ThumbnailURL is derived from
// YoutubeURL.
type Draft struct {
	YoutubeURL   string   `json:"youtube_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Title        string   `json:"title"`
	Logline      string   `json:"logline,omitempty"`
	Tags         []string `json:"tags"`
}

// Film materialises the draft as a new record owned by ownerID.
func (d Draft) Film(id, ownerID string, now time.Time) *Film {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Film{
		ID:           id,
		OwnerID:      ownerID,
		YoutubeURL:   d.YoutubeURL,
		ThumbnailURL: d.ThumbnailURL,
		Title:        d.Title,
		Logline:      d.Logline,
		Tags:         tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Author is the public profile shown next to a film.
type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Detail is the film page payload.
type Detail struct {
	*Film

	// Author is nil when the owner's profile could not be loaded.
	Author   *Author `json:"author,omitempty"`
	EmbedURL string  `json:"embed_url"`
}

// Listing is the grid payload for one query.
type Listing struct {
	Films              []*Film `json:"films"`
	HasExactTitleMatch bool    `json:"has_exact_title_match"`
	ShowCreate         bool    `json:"show_create"`
}
