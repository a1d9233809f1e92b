// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "strings"

// Suggest derives the autocomplete options for query.
//
// The candidate pool is the vocabulary minus everything already selected,
// compared case-insensitively. A blank query returns the whole pool so the
// menu can show every remaining option on focus; otherwise the pool is
// narrowed to case-insensitive substring matches.
//
// Every mutation path of [Selector] recomputes through this function.
func Suggest(vocabulary, selected []string, query string) []string {
	pool := remainder(vocabulary, selected)

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return pool
	}

	matched := make([]string, 0, len(pool))
	for _, candidate := range pool {
		if strings.Contains(strings.ToLower(candidate), needle) {
			matched = append(matched, candidate)
		}
	}
	return matched
}

// ShowCreate reports whether the "Create <query>" option should be offered:
// the trimmed query is non-blank, not already selected, and not an entry of
// the unfiltered vocabulary remainder.
func ShowCreate(vocabulary, selected []string, query string) bool {
	value := strings.TrimSpace(query)
	if value == "" {
		return false
	}
	if indexFold(selected, value) >= 0 {
		return false
	}
	return indexFold(remainder(vocabulary, selected), value) < 0
}

// remainder returns vocabulary entries not present in selected.
func remainder(vocabulary, selected []string) []string {
	pool := make([]string, 0, len(vocabulary))
	for _, candidate := range vocabulary {
		if indexFold(selected, candidate) < 0 {
			pool = append(pool, candidate)
		}
	}
	return pool
}

// indexFold returns the index of the first case-insensitive match of value in
// values, or -1.
func indexFold(values []string, value string) int {
	for i, v := range values {
		if strings.EqualFold(v, value) {
			return i
		}
	}
	return -1
}

// Dedupe drops case-insensitive duplicates and blank entries, keeping the
// first occurrence and its casing.
func Dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || indexFold(out, t) >= 0 {
			continue
		}
		out = append(out, t)
	}
	return out
}
