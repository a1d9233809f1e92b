// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

// Repository persists vocabulary entries and recorded freeform tags.
type Repository interface {
	// ListCurated returns curated tags ordered by sort order.
	ListCurated(context context.Context) ([]*Tag, error)

	// SaveCurated replaces the curated vocabulary: configured rows are
	// upserted, taking over any freeform row with the same slug, and curated
	// rows missing from tags are demoted to freeform.
	SaveCurated(context context.Context, tags []*Tag) error

	// RecordFreeform inserts freeform tags, leaving existing slugs untouched.
	RecordFreeform(context context.Context, tags []*Tag) error
}
