// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search implements the in-memory catalogue filter that powers the
home grid search box.

It is recomputed on every keystroke, so every function here is a pure,
synchronous transformation over a collection snapshot that the caller
already holds. Nothing in this package mutates its input.

Components:

  - Matches: substring predicate over a record's searchable fields.
  - Search: stable filter plus the "exact title match" flag.
  - Present: composes a search result into the fixed-size display grid.
*/
package search

import "strings"

// Record is anything the catalogue filter can match against.
//
// Films implement it in package film; tests use lightweight fakes.
type Record interface {
	// SearchTitle returns the primary display title.
	SearchTitle() string

	// SearchLogline returns the optional one-line description ("" when absent).
	SearchLogline() string

	// SearchTags returns the record's tags in display order.
	SearchTags() []string
}

// Matches reports whether query is a case-insensitive substring of the
// record's title, its logline, or any one of its tags.
//
// A blank query matches nothing. Callers treat a blank query as "show
// everything" on a separate code path and never reach this function.
func Matches(record Record, query string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false
	}

	// Only the edges are insignificant; interior whitespace is part of the needle.
	needle := strings.ToLower(trimmed)

	if contains(record.SearchTitle(), needle) {
		return true
	}

	if logline := record.SearchLogline(); logline != "" && contains(logline, needle) {
		return true
	}

	for _, tag := range record.SearchTags() {
		if contains(tag, needle) {
			return true
		}
	}

	return false
}

// contains is a case-folded substring test. needle must already be lowercase.
func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
