// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogFilmTable represents the 'catalog.film' table
type CatalogFilmTable struct {
	Table        string
	ID           string
	OwnerID      string
	YoutubeURL   string
	ThumbnailURL string
	Title        string
	Logline      string
	Tags         string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogFilm is the schema definition for catalog.film
var CatalogFilm = CatalogFilmTable{
	Table:        "catalog.film",
	ID:           "id",
	OwnerID:      "ownerid",
	YoutubeURL:   "youtubeurl",
	ThumbnailURL: "thumbnailurl",
	Title:        "title",
	Logline:      "logline",
	Tags:         "tags",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t CatalogFilmTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.YoutubeURL, t.ThumbnailURL, t.Title, t.Logline,
		t.Tags, t.CreatedAt, t.UpdatedAt,
	}
}
