// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestSuggest covers pool exclusion and substring filtering.
*/
func TestSuggest(t *testing.T) {
	vocabulary := []string{"RTF 304", "BFP", "The Collective"}

	tests := []struct {
		name     string
		selected []string
		query    string
		want     []string
	}{
		{"blank_query_returns_pool", nil, "", []string{"RTF 304", "BFP", "The Collective"}},
		{"whitespace_query_returns_pool", nil, "   ", []string{"RTF 304", "BFP", "The Collective"}},
		{"selected_excluded", []string{"BFP"}, "", []string{"RTF 304", "The Collective"}},
		{"selected_excluded_case_insensitive", []string{"bfp"}, "", []string{"RTF 304", "The Collective"}},
		{"substring_filter", nil, "rtf", []string{"RTF 304"}},
		{"substring_filter_with_selection", []string{"RTF 304"}, "rtf", []string{}},
		{"interior_match", nil, "coll", []string{"The Collective"}},
		{"no_match", nil, "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(vocabulary, tt.selected, tt.query))
		})
	}
}

/*
TestSuggest_NeverReturnsSelected checks the exclusion property across every
vocabulary prefix.
*/
func TestSuggest_NeverReturnsSelected(t *testing.T) {
	for _, query := range []string{"", "t", "e", "304", "the"} {
		for i := range DefaultVocabulary {
			selected := []string{strings.ToUpper(DefaultVocabulary[i])}
			for _, s := range Suggest(DefaultVocabulary, selected, query) {
				assert.False(t, strings.EqualFold(s, DefaultVocabulary[i]), "query %q returned selected %q", query, s)
			}
		}
	}
}

/*
TestShowCreate verifies when the freeform option is offered.
*/
func TestShowCreate(t *testing.T) {
	vocabulary := []string{"RTF 304", "BFP"}

	tests := []struct {
		name     string
		selected []string
		query    string
		want     bool
	}{
		{"blank", nil, "  ", false},
		{"new_value", nil, "Thesis", true},
		{"vocabulary_exact", nil, "bfp", false},
		{"vocabulary_partial", nil, "bf", true},
		{"already_selected", []string{"Thesis"}, "thesis", false},
		{"selected_vocabulary_entry", []string{"BFP"}, "BFP", false},
		{"trimmed", nil, "  BFP  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShowCreate(vocabulary, tt.selected, tt.query))
		})
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"Drama", " drama ", "", "Comedy", "DRAMA", "  "})
	assert.Equal(t, []string{"Drama", "Comedy"}, got)
}
