// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import "context"

// # Film Data Access

// Repository defines the data access contract for the catalogue.
type Repository interface {
	/*
		ListAll returns every film, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Film: The whole collection ordered by creation time descending
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context) ([]*Film, error)

	/*
		FindByID returns the film with the given ID.

		Returns:
		  - *Film: The stored record
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Film, error)

	// Create persists a new film.
	Create(context context.Context, film *Film) error
}

// # Snapshot Cache

// SnapshotCache holds the serialised collection between requests.
//
// Entries are stamped with a generation. Load reports the current generation
// even on a miss, and Store only makes films visible while that generation is
// still current, so a listing read before an Invalidate is never served after it.
type SnapshotCache interface {
	// Load returns the cached collection for the current generation. ok is
	// false on a miss.
	Load(context context.Context) (films []*Film, generation int64, ok bool, err error)

	// Store caches films under generation.
	Store(context context.Context, generation int64, films []*Film) error

	// Invalidate starts a new generation.
	Invalidate(context context.Context) error
}

// # Collaborators

// AuthorSource resolves the public profile of a film owner.
type AuthorSource interface {
	LookupAuthor(context context.Context, id string) (*Author, error)
}

// nopCache is used when no cache is configured.
type nopCache struct{}

func (nopCache) Load(context.Context) ([]*Film, int64, bool, error) { return nil, 0, false, nil }
func (nopCache) Store(context.Context, int64, []*Film) error { return nil }
func (nopCache) Invalidate(context.Context) error { return nil }
