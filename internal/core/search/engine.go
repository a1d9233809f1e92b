// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"strings"

	"github.com/taibuivan/shortwave/pkg/slice"
)

// Result is the outcome of a single [Search] call.
type Result[R Record] struct {
	// Records holds the matching records in the caller's original order.
	Records []R

	// HasExactTitleMatch is true when some result's title equals the
	// trimmed query, ignoring case. It is always false for a blank query.
	HasExactTitleMatch bool
}

// Search filters records against query.
//
// # Behaviour
//
//   - Blank query: the full input, unfiltered, in caller order.
//   - Otherwise: the stable subsequence of records satisfying [Matches].
//     Results are never re-ranked by relevance.
func Search[R Record](records []R, query string) Result[R] {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Result[R]{Records: records}
	}

	matched := slice.Filter(records, func(record R) bool {
		return Matches(record, query)
	})

	result := Result[R]{Records: matched}
	for _, record := range matched {
		if strings.EqualFold(record.SearchTitle(), trimmed) {
			result.HasExactTitleMatch = true
			break
		}
	}

	return result
}

// ShowCreate reports whether the "search for / create X" affordance should
// be offered for query. It is derived, never stored.
func (r Result[R]) ShowCreate(query string) bool {
	return IsSearching(query) && !r.HasExactTitleMatch
}

// Len returns the number of matching records.
func (r Result[R]) Len() int {
	return len(r.Records)
}

// IsSearching reports whether query switches the grid into search mode.
func IsSearching(query string) bool {
	return strings.TrimSpace(query) != ""
}
