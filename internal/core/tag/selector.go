// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"slices"
	"strings"
)

// Selector holds the tag-picking state of the upload form.
//
// The open/closed menu flag is an explicit field here rather than view
// state, so any presentation layer can render it.
//
// # Invariant
//
// Selected never holds two entries equal under case-insensitive comparison.
//
// # Concurrency
//
// Selector is not safe for concurrent use; it belongs to a single form.
type Selector struct {
	vocabulary  []string
	selected    []string
	query       string
	suggestions []string
	menuOpen    bool
}

// NewSelector creates an empty selector over vocabulary.
func NewSelector(vocabulary []string) *Selector {
	s := &Selector{vocabulary: slices.Clone(vocabulary)}
	s.refresh()
	return s
}

// Vocabulary returns the fixed vocabulary this selector draws from.
func (s *Selector) Vocabulary() []string { return slices.Clone(s.vocabulary) }

// Selected returns the chosen tags in insertion order.
func (s *Selector) Selected() []string { return slices.Clone(s.selected) }

// Query returns the in-progress input text.
func (s *Selector) Query() string { return s.query }

// Suggestions returns the current autocomplete options.
func (s *Selector) Suggestions() []string { return slices.Clone(s.suggestions) }

// MenuOpen reports whether the suggestion menu is visible.
func (s *Selector) MenuOpen() bool { return s.menuOpen }

// ShowCreate reports whether "Create <query>" should be offered.
func (s *Selector) ShowCreate() bool {
	return ShowCreate(s.vocabulary, s.selected, s.query)
}

// SetQuery records a keystroke and reopens the menu.
func (s *Selector) SetQuery(query string) {
	s.query = query
	s.refresh()
	s.menuOpen = true
}

// Focus reopens the menu with suggestions for the current query.
func (s *Selector) Focus() {
	s.refresh()
	s.menuOpen = true
}

// Blur hides the menu. The query and selection are kept.
func (s *Selector) Blur() {
	s.menuOpen = false
}

// Select appends tag unless a case-insensitive duplicate is already chosen.
// The query is cleared either way. It reports whether tag was added.
func (s *Selector) Select(tag string) bool {
	tag = strings.TrimSpace(tag)
	added := false
	if tag != "" && indexFold(s.selected, tag) < 0 {
		s.selected = append(s.selected, tag)
		added = true
	}

	s.query = ""
	s.refresh()
	s.menuOpen = true
	return added
}

// Remove drops the chosen tag matching tag exactly or case-insensitively.
// Suggestions are recomputed against the current query, and the menu stays
// open only while there is something to show.
func (s *Selector) Remove(tag string) bool {
	i := slices.Index(s.selected, tag)
	if i < 0 {
		i = indexFold(s.selected, strings.TrimSpace(tag))
	}
	if i < 0 {
		return false
	}

	s.selected = slices.Delete(s.selected, i, i+1)
	s.refresh()
	s.menuOpen = len(s.suggestions) > 0
	return true
}

// Toggle removes tag if chosen, otherwise selects it.
func (s *Selector) Toggle(tag string) {
	if indexFold(s.selected, strings.TrimSpace(tag)) >= 0 {
		s.Remove(tag)
		return
	}
	s.Select(tag)
}

// Create selects the literal query text as a freeform tag, when offered.
func (s *Selector) Create() bool {
	if !s.ShowCreate() {
		return false
	}
	return s.Select(s.query)
}

// Commit handles the Enter key: an exact match in the vocabulary remainder is
// selected with its canonical casing; anything else becomes a freeform tag.
func (s *Selector) Commit() bool {
	value := strings.TrimSpace(s.query)
	if value == "" {
		return false
	}

	pool := remainder(s.vocabulary, s.selected)
	if i := indexFold(pool, value); i >= 0 {
		return s.Select(pool[i])
	}
	return s.Select(value)
}

// Reset clears the selection and query.
func (s *Selector) Reset() {
	s.selected = nil
	s.query = ""
	s.menuOpen = false
	s.refresh()
}

func (s *Selector) refresh() {
	s.suggestions = Suggest(s.vocabulary, s.selected, s.query)
}
