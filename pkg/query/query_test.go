// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shortwave/pkg/query"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "BFP", []string{"BFP"}},
		{"trimmed", " BFP , RTF 304 ", []string{"BFP", "RTF 304"}},
		{"blank_entries", "BFP,, ,RTF 304,", []string{"BFP", "RTF 304"}},
		{"only_commas", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}
