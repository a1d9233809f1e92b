// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package clientconfig_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shortwave/internal/tui/clientconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := clientconfig.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Empty(t, cfg.LogPath)

	out, in := cfg.Fades()
	assert.Equal(t, 180*time.Millisecond, out)
	assert.Equal(t, 200*time.Millisecond, in)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHORTWAVE_API_URL", "https://films.example")
	t.Setenv("SHORTWAVE_LOG", "/tmp/shortwave.log")
	t.Setenv("SHORTWAVE_TRANSITION_MS", "38")

	cfg, err := clientconfig.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://films.example", cfg.APIURL)
	assert.Equal(t, "/tmp/shortwave.log", cfg.LogPath)

	out, in := cfg.Fades()
	assert.Equal(t, 38*time.Millisecond, out+in)
	assert.Equal(t, 18*time.Millisecond, out)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"negative", "-1"},
		{"not_a_number", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHORTWAVE_TRANSITION_MS", tt.value)
			_, err := clientconfig.Load()
			assert.Error(t, err)
		})
	}
}
